package pagination

import "testing"

func TestDefaultsAndOffset(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("Defaults = %+v", p)
	}

	p = PageRequest{PageSize: 500}
	p.Defaults()
	if p.PageSize != MaxPageSize {
		t.Errorf("PageSize = %d, want %d", p.PageSize, MaxPageSize)
	}

	p = PageRequest{Page: 3, PageSize: 25}
	if p.Offset() != 50 {
		t.Errorf("Offset = %d, want 50", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 41)
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
	if !resp.HasNext {
		t.Error("page 1 of 3 should have a next page")
	}
	if resp.Data == nil {
		t.Error("Data should be an empty slice")
	}

	last := NewPageResponse([]string{"a"}, 3, 20, 41)
	if last.HasNext {
		t.Error("last page should not have a next page")
	}

	empty := NewPageResponse[string](nil, 1, 20, 0)
	if empty.TotalPages != 0 || empty.HasNext {
		t.Errorf("empty response = %+v", empty)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, max, want int
	}{
		{0, MaxListSize, MaxListSize},
		{-1, MaxSearchResults, MaxSearchResults},
		{10, MaxSearchResults, 10},
		{5000, MaxListSize, MaxListSize},
	}

	for _, tt := range tests {
		if got := ClampLimit(tt.limit, tt.max); got != tt.want {
			t.Errorf("ClampLimit(%d, %d) = %d, want %d", tt.limit, tt.max, got, tt.want)
		}
	}
}

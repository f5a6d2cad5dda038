package sanitizer

// Tags sanitizes each tag as a single line and drops tags that end up empty.
// Order is preserved and duplicates are kept.
func Tags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if clean := Line(tag); clean != "" {
			result = append(result, clean)
		}
	}
	return result
}

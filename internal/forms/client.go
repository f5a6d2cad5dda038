package forms

import "followuply/internal/models"

// ClientInput is a raw client form submission.
type ClientInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
	Platform string   `json:"platform"`
}

// ClientFields is a sanitized client ready to store.
type ClientFields struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Phone    string              `json:"phone"`
	Company  string              `json:"company"`
	Notes    string              `json:"notes"`
	Tags     []string            `json:"tags"`
	Status   models.ClientStatus `json:"status"`
	Platform models.Platform     `json:"platform"`
}

// Apply copies the fields onto a client model.
func (f ClientFields) Apply(c *models.Client) {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Company = f.Company
	c.Notes = f.Notes
	c.Tags = models.StringList(f.Tags)
	c.Status = f.Status
	c.Platform = f.Platform
}

// ValidateClient validates a full client form.
func ValidateClient(in ClientInput) Result[ClientFields] {
	c := &checker{}
	var out ClientFields

	out.Name, _ = c.requiredLine("Name", in.Name, NameMaxLength)
	out.Email, _ = c.optionalEmail(in.Email)
	out.Phone, _ = c.optionalPhone(in.Phone)
	out.Company, _ = c.optionalLine("Company", in.Company, CompanyMaxLength)
	out.Notes, _ = c.optionalText("Notes", in.Notes, NotesMaxLength)
	out.Tags, _ = c.tags(in.Tags)
	out.Status, _ = enumField(c, "Status", in.Status, models.ClientStatus.IsValid, models.ClientStatusActive)
	out.Platform, _ = enumField(c, "Platform", in.Platform, models.Platform.IsValid, models.PlatformDirect)

	if out.Email == "" && out.Phone == "" {
		c.warn("No email or phone given, you will not be able to contact this client")
	}

	return finish(c, out)
}

// ClientPatch is a partial client update. Nil fields are left unchanged.
type ClientPatch struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Phone    *string   `json:"phone"`
	Company  *string   `json:"company"`
	Notes    *string   `json:"notes"`
	Tags     *[]string `json:"tags"`
	Status   *string   `json:"status"`
	Platform *string   `json:"platform"`
}

// ValidateClientPatch validates only the fields present in p.
func ValidateClientPatch(p ClientPatch) Result[Changes] {
	c := &checker{}
	changes := Changes{}

	if p.Name != nil {
		if v, ok := c.requiredLine("Name", *p.Name, NameMaxLength); ok {
			changes["name"] = v
		}
	}
	if p.Email != nil {
		if v, ok := c.optionalEmail(*p.Email); ok {
			changes["email"] = v
		}
	}
	if p.Phone != nil {
		if v, ok := c.optionalPhone(*p.Phone); ok {
			changes["phone"] = v
		}
	}
	if p.Company != nil {
		if v, ok := c.optionalLine("Company", *p.Company, CompanyMaxLength); ok {
			changes["company"] = v
		}
	}
	if p.Notes != nil {
		if v, ok := c.optionalText("Notes", *p.Notes, NotesMaxLength); ok {
			changes["notes"] = v
		}
	}
	if p.Tags != nil {
		if v, ok := c.tags(*p.Tags); ok {
			changes["tags"] = models.StringList(v)
		}
	}
	if p.Status != nil {
		if v, ok := requiredEnum(c, "Status", *p.Status, models.ClientStatus.IsValid); ok {
			changes["status"] = v
		}
	}
	if p.Platform != nil {
		if v, ok := requiredEnum(c, "Platform", *p.Platform, models.Platform.IsValid); ok {
			changes["platform"] = v
		}
	}

	return finish(c, changes)
}

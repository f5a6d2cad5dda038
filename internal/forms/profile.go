package forms

import "followuply/internal/models"

// ProfileInput is a raw profile form submission. The plan is not part of it.
type ProfileInput struct {
	DisplayName    string `json:"display_name"`
	Currency       string `json:"currency"`
	Language       string `json:"language"`
	DarkMode       *bool  `json:"dark_mode"`
	LanguageChosen *bool  `json:"language_chosen"`
}

// ProfileFields is a sanitized profile ready to store.
type ProfileFields struct {
	DisplayName    string          `json:"display_name"`
	Currency       models.Currency `json:"currency"`
	Language       models.Language `json:"language"`
	DarkMode       bool            `json:"dark_mode"`
	LanguageChosen bool            `json:"language_chosen"`
}

// Apply copies the fields onto a profile model.
func (f ProfileFields) Apply(p *models.Profile) {
	p.DisplayName = f.DisplayName
	p.Currency = f.Currency
	p.Language = f.Language
	p.DarkMode = f.DarkMode
	p.LanguageChosen = f.LanguageChosen
}

// ValidateProfile validates a full profile form.
func ValidateProfile(in ProfileInput) Result[ProfileFields] {
	c := &checker{}
	var out ProfileFields

	out.DisplayName, _ = c.requiredLine("Display name", in.DisplayName, NameMaxLength)
	out.Currency, _ = c.currencyField(in.Currency, models.CurrencyUSD)
	out.Language, _ = enumField(c, "Language", in.Language, models.Language.IsValid, models.LanguageEnglish)
	if in.DarkMode != nil {
		out.DarkMode = *in.DarkMode
	}
	if in.LanguageChosen != nil {
		out.LanguageChosen = *in.LanguageChosen
	}

	return finish(c, out)
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	DisplayName    *string `json:"display_name"`
	Currency       *string `json:"currency"`
	Language       *string `json:"language"`
	DarkMode       *bool   `json:"dark_mode"`
	LanguageChosen *bool   `json:"language_chosen"`
}

// ValidateProfilePatch validates only the fields present in p.
func ValidateProfilePatch(p ProfilePatch) Result[Changes] {
	c := &checker{}
	changes := Changes{}

	if p.DisplayName != nil {
		if v, ok := c.requiredLine("Display name", *p.DisplayName, NameMaxLength); ok {
			changes["display_name"] = v
		}
	}
	if p.Currency != nil {
		if isBlank(*p.Currency) {
			c.fail("Currency is required")
		} else if v, ok := c.currencyField(*p.Currency, ""); ok {
			changes["currency"] = v
		}
	}
	if p.Language != nil {
		if v, ok := requiredEnum(c, "Language", *p.Language, models.Language.IsValid); ok {
			changes["language"] = v
		}
	}
	if p.DarkMode != nil {
		changes["dark_mode"] = *p.DarkMode
	}
	if p.LanguageChosen != nil {
		changes["language_chosen"] = *p.LanguageChosen
	}

	return finish(c, changes)
}

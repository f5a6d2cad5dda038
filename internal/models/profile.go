package models

// Plan is the user's subscription tier
type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanSuperPro Plan = "super_pro"
)

// Plans lists the subscription tiers.
var Plans = []Plan{PlanFree, PlanPro, PlanSuperPro}

// IsValid reports whether p is a known plan.
func (p Plan) IsValid() bool { return contains(Plans, p) }

// Profile holds per-user display settings. The UI caches a snapshot of it
// locally, including the dark-mode and language-chosen flags.
type Profile struct {
	Base
	UserID         string   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DisplayName    string   `gorm:"size:100;not null" json:"display_name"`
	Currency       Currency `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Language       Language `gorm:"size:2;not null;default:'en'" json:"language"`
	LanguageChosen bool     `gorm:"not null;default:false" json:"language_chosen"`
	DarkMode       bool     `gorm:"not null;default:false" json:"dark_mode"`
	Plan           Plan     `gorm:"size:16;not null;default:'free'" json:"plan"`
}

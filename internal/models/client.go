package models

// ClientStatus represents the lifecycle state of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusArchived ClientStatus = "archived"
)

// ClientStatuses lists the valid client statuses.
var ClientStatuses = []ClientStatus{ClientStatusActive, ClientStatusInactive, ClientStatusArchived}

// IsValid reports whether s is a known client status.
func (s ClientStatus) IsValid() bool { return contains(ClientStatuses, s) }

// Platform is where the freelancer found the client
type Platform string

const (
	PlatformFiverr Platform = "fiverr"
	PlatformUpwork Platform = "upwork"
	PlatformDirect Platform = "direct"
	PlatformOther  Platform = "other"
)

// Platforms lists the valid client platforms.
var Platforms = []Platform{PlatformFiverr, PlatformUpwork, PlatformDirect, PlatformOther}

// IsValid reports whether p is a known platform.
func (p Platform) IsValid() bool { return contains(Platforms, p) }

// Client is a customer of the freelancer
type Client struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string       `gorm:"size:100;not null" json:"name"`
	Email    string       `gorm:"size:254" json:"email,omitempty"`
	Phone    string       `gorm:"size:16" json:"phone,omitempty"`
	Company  string       `gorm:"size:100" json:"company,omitempty"`
	Notes    string       `gorm:"size:1000" json:"notes,omitempty"`
	Tags     StringList   `gorm:"type:text" json:"tags"`
	Status   ClientStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	Platform Platform     `gorm:"size:16;not null;default:'direct'" json:"platform"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

package forms

import "github.com/shopspring/decimal"

// Field bounds shared by the entity validators.
const (
	NameMaxLength        = 100
	CompanyMaxLength     = 100
	TitleMaxLength       = 200
	NotesMaxLength       = 1000
	SubcategoryMaxLength = 100
	TagMaxLength         = 50
	MaxTags              = 10
	PhoneMinDigits       = 7
	PhoneMaxDigits       = 15
	SearchMinLength      = 2
	SearchMaxLength      = 100

	// AmountMaxExponent bounds the decimal exponent of a parsed amount.
	// Rounding cost grows with the exponent.
	AmountMaxExponent = 20
)

var (
	// MinAmount is the smallest accepted money amount.
	MinAmount = decimal.RequireFromString("0.01")
	// MaxAmount is the largest accepted money amount.
	MaxAmount = decimal.RequireFromString("999999999.99")
	// LargeInvoiceAmount triggers a double-check warning when exceeded.
	LargeInvoiceAmount = decimal.NewFromInt(100000)
	// LargeExpenseAmount triggers a double-check warning when exceeded.
	LargeExpenseAmount = decimal.NewFromInt(10000)
)

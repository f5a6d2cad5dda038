package models

// Currency is an ISO 4217 code accepted for invoices, expenses and profiles.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
)

// Currencies lists the supported currencies.
var Currencies = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD,
	CurrencyJPY, CurrencyCHF, CurrencyCNY, CurrencyINR,
}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool { return contains(Currencies, c) }

// Language is a supported UI locale.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguagePortuguese Language = "pt"
	LanguageArabic     Language = "ar"
)

// Languages lists the supported locales.
var Languages = []Language{
	LanguageEnglish, LanguageSpanish, LanguageFrench,
	LanguageGerman, LanguagePortuguese, LanguageArabic,
}

// IsValid reports whether l is a supported locale.
func (l Language) IsValid() bool { return contains(Languages, l) }

// PaymentMethod records how an invoice or expense was paid.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []PaymentMethod{
	PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodDebitCard,
	PaymentMethodCash, PaymentMethodPayPal, PaymentMethodStripe,
	PaymentMethodCheck, PaymentMethodOther,
}

// IsValid reports whether m is an accepted payment method.
func (m PaymentMethod) IsValid() bool { return contains(PaymentMethods, m) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

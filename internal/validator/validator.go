// Package validator provides the field-level predicates used by the form
// validators and registers custom tags with Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"followuply/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", enum(func(s string) bool { return models.Currency(s).IsValid() }))
		_ = v.RegisterValidation("client_status", enum(func(s string) bool { return models.ClientStatus(s).IsValid() }))
		_ = v.RegisterValidation("client_platform", enum(func(s string) bool { return models.Platform(s).IsValid() }))
		_ = v.RegisterValidation("invoice_status", enum(func(s string) bool { return models.InvoiceStatus(s).IsValid() }))
		_ = v.RegisterValidation("reminder_priority", enum(func(s string) bool { return models.ReminderPriority(s).IsValid() }))
		_ = v.RegisterValidation("reminder_type", enum(func(s string) bool { return models.ReminderType(s).IsValid() }))
		_ = v.RegisterValidation("reminder_status", enum(func(s string) bool { return models.ReminderStatus(s).IsValid() }))
		_ = v.RegisterValidation("expense_category", enum(func(s string) bool { return models.ExpenseCategory(s).IsValid() }))
		_ = v.RegisterValidation("expense_status", enum(func(s string) bool { return models.ExpenseStatus(s).IsValid() }))
		_ = v.RegisterValidation("payment_method", enum(func(s string) bool { return models.PaymentMethod(s).IsValid() }))
		_ = v.RegisterValidation("uuid_v", func(fl validator.FieldLevel) bool { return IsUUID(fl.Field().String()) })
	}
}

func enum(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/models"
	"followuply/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db     *gorm.DB
	audit  AuditServicer
	policy Policy
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, audit AuditServicer, policy Policy) ExpenseServicer {
	return &expenseService{db: db, audit: auditOrNop(audit), policy: policy}
}

// CreateExpense validates the form and stores a new expense.
func (s *expenseService) CreateExpense(ctx context.Context, userID string, in forms.ExpenseInput) (*models.Expense, []string, error) {
	res := forms.ValidateExpense(in, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if res.Value.ClientID != "" {
		if err := ownsClient(ctx, s.db, userID, res.Value.ClientID); err != nil {
			return nil, nil, err
		}
	}

	expense := &models.Expense{UserID: userID}
	res.Value.Apply(expense)

	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, nil, apperrors.Classify(err, apperrors.ErrExpenseNotFound)
	}
	return expense, res.Warnings, nil
}

// GetExpense retrieves an expense by ID for a specific user
func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	return findOwned[models.Expense](ctx, s.db, userID, expenseID, apperrors.ErrExpenseNotFound)
}

// UpdateExpense applies the fields present in patch.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, patch forms.ExpensePatch) (*models.Expense, []string, error) {
	res := forms.ValidateExpensePatch(patch, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if ref, ok := res.Value["client_id"].(*string); ok && ref != nil {
		if err := ownsClient(ctx, s.db, userID, *ref); err != nil {
			return nil, nil, err
		}
	}

	expense, err := updateOwned[models.Expense](ctx, s.db, userID, expenseID, res.Value, apperrors.ErrExpenseNotFound)
	if err != nil {
		return nil, nil, err
	}
	if res.Value.Has("status") {
		s.audit.Log(ctx, userID, AuditStatusChange, models.ResourceExpense, expenseID, map[string]any{"status": expense.Status})
	}
	return expense, res.Warnings, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) (time.Time, error) {
	deletedAt, err := softDelete[models.Expense](ctx, s.db, userID, expenseID, s.policy.now(), apperrors.ErrExpenseNotFound)
	if err != nil {
		return time.Time{}, err
	}
	s.audit.Log(ctx, userID, AuditDelete, models.ResourceExpense, expenseID, nil)
	return s.policy.UndoDeadline(deletedAt), nil
}

// RestoreExpense undoes a recent delete.
func (s *expenseService) RestoreExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := restoreOwned[models.Expense](ctx, s.db, s.policy, userID, expenseID, apperrors.ErrExpenseNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditRestore, models.ResourceExpense, expenseID, nil)
	return expense, nil
}

// ListExpenses returns the user's expenses, most recent expense date first.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.filtered(ctx, userID, filter).
		Order("expense_date DESC, created_at DESC").
		Limit(pagination.ClampLimit(filter.Limit, pagination.MaxListSize)).
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// SearchExpenses matches title and subcategory.
func (s *expenseService) SearchExpenses(ctx context.Context, userID, query string) ([]models.Expense, error) {
	return searchOwned[models.Expense](ctx, s.db, userID, query,
		[]string{"title", "subcategory"}, "expense_date DESC, created_at DESC")
}

// SummarizeExpenses totals the filtered expenses per currency. Amounts in
// different currencies are never added together.
func (s *expenseService) SummarizeExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]ExpenseSummary, error) {
	var rows []struct {
		Currency      models.Currency
		Category      models.ExpenseCategory
		TaxDeductible bool
		Total         decimal.Decimal
		Count         int64
	}
	err := s.filtered(ctx, userID, filter).
		Model(&models.Expense{}).
		Select("currency, category, tax_deductible, SUM(amount) AS total, COUNT(*) AS count").
		Group("currency, category, tax_deductible").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}

	byCurrency := make(map[models.Currency]*ExpenseSummary)
	for _, row := range rows {
		sum, ok := byCurrency[row.Currency]
		if !ok {
			sum = &ExpenseSummary{
				Currency:   row.Currency,
				ByCategory: make(map[models.ExpenseCategory]decimal.Decimal),
			}
			byCurrency[row.Currency] = sum
		}
		total := row.Total.Round(2)
		sum.Count += row.Count
		sum.Total = sum.Total.Add(total)
		sum.ByCategory[row.Category] = sum.ByCategory[row.Category].Add(total)
		if row.TaxDeductible {
			sum.TaxDeductible = sum.TaxDeductible.Add(total)
		}
	}

	out := make([]ExpenseSummary, 0, len(byCurrency))
	for _, sum := range byCurrency {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (s *expenseService) filtered(ctx context.Context, userID string, filter ExpenseFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.From != nil {
		query = query.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("expense_date < ?", filter.To.AddDate(0, 0, 1))
	}
	return query
}

package budget

import (
	errors "github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/core/common/validation"
	"github.com/fintrackhq/fintrack/internal/core/money"
)

// BudgetDTO is used for both create and edit: edits are full-replace,
// every field is rewritten.
type BudgetDTO struct {
	Name         string  `json:"name"`
	Amount       string  `json:"amount"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	CategoryName *string `json:"category_name,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// Parse validates the DTO and returns the decoded amount. A zero
// amount is allowed and reports usage as 0%.
func (dto BudgetDTO) Parse() (money.Money, error) {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLen(100, errors.ErrCodeValidationFailed)
	v.Field("amount", dto.Amount).Required()
	v.Field("month", dto.Month).Required().IntRange(1, 12, errors.ErrCodeInvalidMonth)
	v.Field("year", dto.Year).Required().IntRange(1970, 9999, errors.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return 0, err
	}

	amount, err := money.Parse(dto.Amount)
	if err != nil {
		return 0, errors.NewValidationFieldError("amount", err.Error(), errors.ErrCodeInvalidAmount)
	}
	return amount, nil
}

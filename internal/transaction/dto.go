package transaction

import (
	"time"

	errors "github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/core/common/validation"
	"github.com/fintrackhq/fintrack/internal/core/money"
)

// TransactionDTO is used for both create and edit: edits are
// full-replace, every field is rewritten.
type TransactionDTO struct {
	CategoryID    int64   `json:"category_id"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	Amount        string  `json:"amount"`
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

const dateLayout = "2006-01-02"

// Parse validates the DTO and returns the decoded amount and date.
func (dto TransactionDTO) Parse() (money.Money, time.Time, error) {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLen(150, errors.ErrCodeValidationFailed)
	v.Field("type", dto.Type).Required().OneOf(errors.ErrCodeInvalidType, TypeIncome, TypeExpense)
	v.Field("amount", dto.Amount).Required()
	v.Field("date", dto.Date).Required()
	if err := v.Validate(); err != nil {
		return 0, time.Time{}, err
	}

	if dto.CategoryID <= 0 {
		return 0, time.Time{}, errors.NewValidationFieldError("category_id", "category is required", errors.ErrCodeValidationFailed)
	}

	amount, err := money.Parse(dto.Amount)
	if err != nil {
		return 0, time.Time{}, errors.NewValidationFieldError("amount", err.Error(), errors.ErrCodeInvalidAmount)
	}

	date, err := time.ParseInLocation(dateLayout, dto.Date, time.UTC)
	if err != nil {
		return 0, time.Time{}, errors.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}

	return amount, date, nil
}

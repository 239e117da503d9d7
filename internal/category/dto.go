package category

import (
	errors "github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/core/common/validation"
)

// CategoryDTO is used for both create and edit: edits are full-replace,
// every field is rewritten.
type CategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (dto CategoryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLen(100, errors.ErrCodeValidationFailed)
	v.Field("type", dto.Type).Required().OneOf(errors.ErrCodeInvalidType, TypeIncome, TypeExpense)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

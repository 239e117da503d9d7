package budget

import (
	"time"

	budgetDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/budget"
	"github.com/fintrackhq/fintrack/internal/core/money"
)

// Budget is a monthly spending limit. CategoryName is a free-text
// reference: usage is matched against expense categories by name, and
// a budget whose name matches no category simply reports zero spend.
type Budget struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Name         string      `json:"name"`
	Amount       money.Money `json:"amount"`
	Month        int         `json:"month"`
	Year         int         `json:"year"`
	CategoryName *string     `json:"category_name,omitempty"`
	Description  *string     `json:"description,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OwnedBy implements auth.Owned.
func (b *Budget) OwnedBy() int64 {
	return b.UserID
}

func ToDataModel(b *Budget) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		AmountCents:  b.Amount.Cents(),
		Month:        b.Month,
		Year:         b.Year,
		CategoryName: b.CategoryName,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func FromDataModel(b *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		Amount:       money.FromCents(b.AmountCents),
		Month:        b.Month,
		Year:         b.Year,
		CategoryName: b.CategoryName,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func FromDataModelSlice(budgets []*budgetDatamodel.Budget) []*Budget {
	result := make([]*Budget, len(budgets))
	for i, b := range budgets {
		result[i] = FromDataModel(b)
	}
	return result
}

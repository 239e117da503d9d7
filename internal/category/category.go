package category

import (
	"time"

	categoryDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/category"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Category struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Color       *string   `json:"color,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedBy implements auth.Owned.
func (c *Category) OwnedBy() int64 {
	return c.UserID
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}

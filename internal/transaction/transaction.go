package transaction

import (
	"time"

	transactionDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/transaction"
	"github.com/fintrackhq/fintrack/internal/core/money"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is the domain view of a recorded income or expense.
// CategoryName is resolved from the owning category at read time so
// that aggregation can group by name without extra lookups.
type Transaction struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	CategoryID    int64       `json:"category_id"`
	CategoryName  string      `json:"category_name,omitempty"`
	Title         string      `json:"title"`
	Description   *string     `json:"description,omitempty"`
	Amount        money.Money `json:"amount"`
	Type          string      `json:"type"`
	Date          time.Time   `json:"date"`
	PaymentMethod *string     `json:"payment_method,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OwnedBy implements auth.Owned.
func (t *Transaction) OwnedBy() int64 {
	return t.UserID
}

func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

func ToDataModel(t *Transaction) *transactionDatamodel.Transaction {
	return &transactionDatamodel.Transaction{
		ID:            t.ID,
		UserID:        t.UserID,
		CategoryID:    t.CategoryID,
		Title:         t.Title,
		Description:   t.Description,
		AmountCents:   t.Amount.Cents(),
		Type:          t.Type,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func FromDataModel(t *transactionDatamodel.Transaction) *Transaction {
	return &Transaction{
		ID:            t.ID,
		UserID:        t.UserID,
		CategoryID:    t.CategoryID,
		Title:         t.Title,
		Description:   t.Description,
		Amount:        money.FromCents(t.AmountCents),
		Type:          t.Type,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

package postgres

import (
	"time"

	"gorm.io/gorm"

	transactionDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/transaction"
	"github.com/fintrackhq/fintrack/internal/transaction"
)

const joinedSelect = `
	SELECT t.id, t.user_id, t.category_id, c.name AS category_name,
	       t.title, t.description, t.amount_cents, t.type, t.transaction_date,
	       t.payment_method, t.notes, t.created_at, t.updated_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id`

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *transactionDatamodel.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByID(id int64) (*transactionDatamodel.JoinedRow, error) {
	var row transactionDatamodel.JoinedRow
	result := r.db.Raw(joinedSelect+` WHERE t.id = ?`, id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *TransactionRepository) ListByDateRange(userID int64, start, end time.Time) ([]*transactionDatamodel.JoinedRow, error) {
	var rows []*transactionDatamodel.JoinedRow
	err := r.db.Raw(joinedSelect+`
		WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date < ?
		ORDER BY t.transaction_date DESC, t.created_at DESC`,
		userID, start, end).Scan(&rows).Error
	return rows, err
}

func (r *TransactionRepository) ListRecent(userID int64, limit int) ([]*transactionDatamodel.JoinedRow, error) {
	var rows []*transactionDatamodel.JoinedRow
	err := r.db.Raw(joinedSelect+`
		WHERE t.user_id = ?
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT ?`,
		userID, limit).Scan(&rows).Error
	return rows, err
}

func (r *TransactionRepository) CategoryBelongsToUser(categoryID, userID int64) (bool, error) {
	var count int64
	err := r.db.Table("categories").
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TransactionRepository) Update(t *transactionDatamodel.Transaction) error {
	return r.db.Save(t).Error
}

func (r *TransactionRepository) Delete(id int64) error {
	return r.db.Delete(&transactionDatamodel.Transaction{}, id).Error
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack/internal/budget"
	budgetDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/budget"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(b *budgetDatamodel.Budget) error {
	return r.db.Create(b).Error
}

func (r *BudgetRepository) GetByID(id int64) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	err := r.db.Where("id = ?", id).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) ListByMonth(userID int64, year, month int) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget
	err := r.db.
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("name ASC").
		Find(&budgets).Error
	return budgets, err
}

// ListByRange returns budgets between the start month (inclusive) and
// the end month (exclusive), in chronological order.
func (r *BudgetRepository) ListByRange(userID int64, startYear, startMonth, endYear, endMonth int) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget
	err := r.db.
		Where("user_id = ?", userID).
		Where("year > ? OR (year = ? AND month >= ?)", startYear, startYear, startMonth).
		Where("year < ? OR (year = ? AND month < ?)", endYear, endYear, endMonth).
		Order("year ASC, month ASC").
		Find(&budgets).Error
	return budgets, err
}

func (r *BudgetRepository) Update(b *budgetDatamodel.Budget) error {
	return r.db.Save(b).Error
}

func (r *BudgetRepository) Delete(id int64) error {
	return r.db.Delete(&budgetDatamodel.Budget{}, id).Error
}

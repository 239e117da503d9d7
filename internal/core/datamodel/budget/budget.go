package budget

import "time"

// Budget links to spending by category NAME, not id. The weak string
// reference comes straight from the product's data model: renaming a
// category orphans budgets pointing at the old name.
type Budget struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	AmountCents  int64     `gorm:"column:amount_cents;not null"`
	Month        int       `gorm:"column:month;not null"`
	Year         int       `gorm:"column:year;not null"`
	CategoryName *string   `gorm:"column:category_name"`
	Description  *string   `gorm:"column:description"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Budget) TableName() string {
	return "budgets"
}

package transaction

import "time"

type Transaction struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;index"`
	CategoryID    int64     `gorm:"column:category_id;not null;index"`
	Title         string    `gorm:"column:title;not null"`
	Description   *string   `gorm:"column:description"`
	AmountCents   int64     `gorm:"column:amount_cents;not null"`
	Type          string    `gorm:"column:type;not null"`
	Date          time.Time `gorm:"column:transaction_date;type:date;not null"`
	PaymentMethod *string   `gorm:"column:payment_method"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// JoinedRow is the flat shape of a transaction row joined with its
// category, used by raw list queries that need the category name.
type JoinedRow struct {
	ID            int64     `gorm:"column:id"`
	UserID        int64     `gorm:"column:user_id"`
	CategoryID    int64     `gorm:"column:category_id"`
	CategoryName  string    `gorm:"column:category_name"`
	Title         string    `gorm:"column:title"`
	Description   *string   `gorm:"column:description"`
	AmountCents   int64     `gorm:"column:amount_cents"`
	Type          string    `gorm:"column:type"`
	Date          time.Time `gorm:"column:transaction_date"`
	PaymentMethod *string   `gorm:"column:payment_method"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

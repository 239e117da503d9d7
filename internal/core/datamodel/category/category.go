package category

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Type        string    `gorm:"column:type;not null"`
	Color       *string   `gorm:"column:color"` // hex string, e.g. #FF8800
	Icon        *string   `gorm:"column:icon"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

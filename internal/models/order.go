package models

type Order struct {
	OrderID int   `gorm:"primaryKey"`
	UserID  int64 `gorm:"not null;index"`
	Timestamps
}

func (Order) TableName() string { return TableName(EntityOrder) }

package models

// OrderProduct links a product into an order. Its identity is the
// (OrderID, ProductID) pair.
type OrderProduct struct {
	OrderID   int `gorm:"primaryKey;autoIncrement:false"`
	ProductID int `gorm:"primaryKey;autoIncrement:false;index"`
	Quantity  int `gorm:"not null"`
}

func (OrderProduct) TableName() string { return TableName(EntityOrderProduct) }

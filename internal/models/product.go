package models

import "github.com/shopspring/decimal"

// PriceScale is the number of fractional digits stored for Product.Price.
const PriceScale = 4

type Product struct {
	ProductID   int             `gorm:"primaryKey"`
	Title       string          `gorm:"size:255;not null"`
	Description *string         `gorm:"size:3000"`
	Price       decimal.Decimal `gorm:"type:numeric(16,4);not null"`
	Timestamps
}

func (Product) TableName() string { return TableName(EntityProduct) }

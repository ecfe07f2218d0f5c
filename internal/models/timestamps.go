package models

import "time"

// Timestamps is embedded by value in every auditable entity.
// UpdatedAt is refreshed by gorm on each update.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

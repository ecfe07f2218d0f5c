package models

type User struct {
	TelegramID   int64   `gorm:"primaryKey;autoIncrement:false"`
	FullName     string  `gorm:"size:255;not null"`
	UserName     *string `gorm:"column:username;size:255"`
	LanguageCode string  `gorm:"size:10;not null"`
	ReferrerID   *int64
	Timestamps
}

func (User) TableName() string { return TableName(EntityUser) }

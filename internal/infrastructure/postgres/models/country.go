package models

import "time"

type CountryModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Code      string `gorm:"uniqueIndex;size:8"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

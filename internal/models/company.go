package models

import "time"

type Company struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Slug         string `gorm:"size:100;uniqueIndex;not null"` // inmutable, derivado del nombre
	ContactEmail string `gorm:"size:100"`
	LogoURL      string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Users   []User
	Reports []Report
}

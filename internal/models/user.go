package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID *uint
	Company   *Company
	Email     string `gorm:"size:100;uniqueIndex;not null"`
	FullName  string `gorm:"size:100"`
	// Vacío hasta que el usuario configure una contraseña (los invitados
	// entran por magic link).
	PasswordHash   string   `gorm:"size:255"`
	Role           UserRole `gorm:"size:20;not null;default:client"`
	EmailConfirmed bool     `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package models

import "time"

// MagicLink: tokens de acceso de un solo uso enviados por email.
// Se guarda el hash del token, nunca el token en claro.
type MagicLink struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"index;not null"`
	User       User
	TokenHash  string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

func (m *MagicLink) Usable(now time.Time) bool {
	return m.ConsumedAt == nil && now.Before(m.ExpiresAt)
}

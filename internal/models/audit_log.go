package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionPublish AuditAction = "publish"
	AuditActionInvite  AuditAction = "invite"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Qué empresa quedó afectada (si aplica)
	CompanyID *uint `json:"company_id"`

	// Qué admin hizo el cambio
	UserID    uint   `json:"user_id"`
	UserEmail string `gorm:"size:100" json:"user_email"` // denormalizado

	// Qué entidad (ej: "company", "user", "report")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`
}

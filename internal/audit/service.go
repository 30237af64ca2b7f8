package audit

import (
	"fmt"

	"portal-backend/internal/database"
	"portal-backend/internal/models"
)

type LogOptions struct {
	CompanyID   *uint
	UserID      uint
	UserEmail   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
}

// WriteLog deja registro de una mutación administrativa. Los handlers lo
// tratan como best-effort: un fallo acá no aborta la operación que ya pasó.
func WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		CompanyID:   opts.CompanyID,
		UserID:      opts.UserID,
		UserEmail:   opts.UserEmail,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el audit log: %w", err)
	}

	return nil
}

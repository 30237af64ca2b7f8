package models

import "time"

type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportPublished ReportStatus = "published"
)

type Report struct {
	ID          uint `gorm:"primaryKey"`
	CompanyID   uint `gorm:"index;not null"`
	Company     Company
	Title       string       `gorm:"size:255;not null"`
	PeriodMonth int          `gorm:"index;not null"` // mes (1-12)
	PeriodYear  int          `gorm:"index;not null"` // año
	Status      ReportStatus `gorm:"size:20;not null;default:draft"`
	// Ruta del PDF dentro del file store; vacío si todavía no se subió.
	PDFPath     string `gorm:"size:255"`
	CreatedBy   *uint
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

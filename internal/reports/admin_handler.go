package reports

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	CompanyID   uint   `json:"company_id"`
	Title       string `json:"title"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func CreateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Title = strings.TrimSpace(body.Title)
		if len(body.Title) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Título requerido")
		}
		if body.PeriodMonth < 1 || body.PeriodMonth > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Mes inválido")
		}
		if body.PeriodYear < 2000 || body.PeriodYear > 2100 {
			return fiber.NewError(fiber.StatusBadRequest, "Año inválido")
		}
		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Empresa requerida")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empresa no encontrada")
		}

		report := models.Report{
			CompanyID:   company.ID,
			Title:       body.Title,
			PeriodMonth: body.PeriodMonth,
			PeriodYear:  body.PeriodYear,
			Status:      models.ReportDraft,
			CreatedBy:   &caller.ID,
		}
		if err := database.DB.Create(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el reporte: "+err.Error())
		}

		_ = audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      caller.ID,
			UserEmail:   caller.Email,
			EntityType:  "report",
			EntityID:    report.ID,
			Action:      models.AuditActionCreate,
			Description: "Reporte creado: " + report.Title,
		})

		report.Company = company
		return c.Status(fiber.StatusCreated).JSON(reportResponse(&report))
	}
}

// Subida del PDF del reporte. El archivo queda bajo un nombre uuid dentro
// de la carpeta de la empresa y el reporte guarda la ruta relativa.
func UploadReportPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.Report
		if err := database.DB.Preload("Company").First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer el archivo: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se pueden subir archivos .pdf")
		}

		relPath := filepath.ToSlash(filepath.Join("reports", report.Company.Slug, uuid.NewString()+".pdf"))
		dstPath := filepath.Join(cfg.StoragePath, filepath.FromSlash(relPath))

		if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el archivo: "+err.Error())
		}
		if err := c.SaveFile(fileHeader, dstPath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el archivo: "+err.Error())
		}

		report.PDFPath = relPath
		if err := database.DB.Save(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el reporte: "+err.Error())
		}

		return c.JSON(reportResponse(&report))
	}
}

func PublishReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var report models.Report
		if err := database.DB.Preload("Company").First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		if report.Status == models.ReportPublished {
			return fiber.NewError(fiber.StatusBadRequest, "El reporte ya está publicado")
		}

		now := time.Now()
		report.Status = models.ReportPublished
		report.PublishedAt = &now
		if err := database.DB.Save(&report).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo publicar el reporte: "+err.Error())
		}

		_ = audit.WriteLog(audit.LogOptions{
			CompanyID:   &report.CompanyID,
			UserID:      caller.ID,
			UserEmail:   caller.Email,
			EntityType:  "report",
			EntityID:    report.ID,
			Action:      models.AuditActionPublish,
			Description: "Reporte publicado: " + report.Title,
		})

		return c.JSON(reportResponse(&report))
	}
}

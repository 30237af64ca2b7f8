package admin

import (
	"fmt"

	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Exporta el catálogo completo de reportes a un .xlsx para revisión
// interna.
func ExportReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var all []models.Report
		if err := database.DB.Preload("Company").
			Order("period_year DESC").
			Order("period_month DESC").
			Find(&all).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer los reportes")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Reportes"
		f.SetSheetName("Sheet1", sheet)

		header := []interface{}{"Empresa", "Título", "Período", "Estado", "PDF"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el archivo")
		}

		for i := range all {
			r := &all[i]
			pdf := "no"
			if r.PDFPath != "" {
				pdf = "sí"
			}
			row := []interface{}{
				r.Company.Name,
				r.Title,
				reports.FormatPeriod(r.PeriodMonth, r.PeriodYear),
				string(r.Status),
				pdf,
			}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el archivo")
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reportes.xlsx"`)
		return c.Send(buf.Bytes())
	}
}

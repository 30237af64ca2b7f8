package reports

import (
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type ReportCompany struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ReportResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	PeriodMonth int           `json:"period_month"`
	PeriodYear  int           `json:"period_year"`
	Period      string        `json:"period"`
	Status      string        `json:"status"`
	HasPDF      bool          `json:"has_pdf"`
	Company     ReportCompany `json:"company"`
	PublishedAt *string       `json:"published_at"`
	CreatedAt   string        `json:"created_at"`
}

func reportResponse(r *models.Report) ReportResponse {
	res := ReportResponse{
		ID:          r.ID,
		Title:       r.Title,
		PeriodMonth: r.PeriodMonth,
		PeriodYear:  r.PeriodYear,
		Period:      FormatPeriod(r.PeriodMonth, r.PeriodYear),
		Status:      string(r.Status),
		HasPDF:      r.PDFPath != "",
		Company: ReportCompany{
			Name: r.Company.Name,
			Slug: r.Company.Slug,
		},
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.PublishedAt != nil {
		s := r.PublishedAt.Format("2006-01-02 15:04:05")
		res.PublishedAt = &s
	}
	return res
}

// visibleTo: los clientes solo ven reportes publicados de su propia
// empresa; los admins ven todo.
func visibleTo(user *models.User, r *models.Report) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if r.Status != models.ReportPublished {
		return false
	}
	return user.CompanyID != nil && *user.CompanyID == r.CompanyID
}

func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		query := database.DB.Preload("Company").
			Order("period_year DESC").
			Order("period_month DESC")

		// Los admins pueden incluir borradores; para el resto solo
		// publicados.
		includeDrafts := user.Role == models.RoleAdmin && c.QueryBool("include_drafts")
		if !includeDrafts {
			query = query.Where("status = ?", models.ReportPublished)
		}

		if user.Role != models.RoleAdmin {
			if user.CompanyID == nil {
				// Cliente sin empresa asignada: no ve nada
				return c.JSON([]ReportResponse{})
			}
			query = query.Where("company_id = ?", *user.CompanyID)
		}

		var reports []models.Report
		if err := query.Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los reportes")
		}

		res := make([]ReportResponse, 0, len(reports))
		for i := range reports {
			res = append(res, reportResponse(&reports[i]))
		}

		return c.JSON(res)
	}
}

func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var report models.Report
		if err := database.DB.Preload("Company").First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		// Un reporte ajeno responde igual que uno inexistente
		if !visibleTo(user, &report) {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		return c.JSON(reportResponse(&report))
	}
}

// Descarga: 302 a una URL firmada recién acuñada, nunca cacheada.
func DownloadReportHandler(cfg *config.Config) fiber.Handler {
	signer := storage.NewSigner(cfg.StorageSecret)

	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var report models.Report
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		if !visibleTo(user, &report) {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		if report.PDFPath == "" {
			return fiber.NewError(fiber.StatusNotFound, "Reporte no encontrado")
		}

		signedURL := signer.Sign(report.PDFPath, storage.SignedURLTTL)
		return c.Redirect(signedURL, fiber.StatusFound)
	}
}

package admin

import (
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCompanyRequest struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"` // Opcional
}

type CompanyResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ContactEmail string `json:"contact_email"`
	LogoURL      string `json:"logo_url"`
	UserCount    int64  `json:"user_count"`
	CreatedAt    string `json:"created_at"`
}

func companyResponse(company *models.Company, userCount int64) CompanyResponse {
	return CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		Slug:         company.Slug,
		ContactEmail: company.ContactEmail,
		LogoURL:      company.LogoURL,
		UserCount:    userCount,
		CreatedAt:    company.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if len(body.Name) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre de empresa requerido")
		}

		slug := Slugify(body.Name)
		if slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre de empresa requerido")
		}

		// Chequeo de colisión antes del insert; el índice único cubre la
		// carrera restante.
		var exist models.Company
		if err := database.DB.Where("slug = ?", slug).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Ya existe una empresa con ese nombre")
		}

		company := models.Company{
			Name: body.Name,
			Slug: slug,
		}
		if body.ContactEmail != nil {
			company.ContactEmail = strings.TrimSpace(*body.ContactEmail)
		}

		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Ya existe una empresa con ese nombre")
		}

		_ = audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      caller.ID,
			UserEmail:   caller.Email,
			EntityType:  "company",
			EntityID:    company.ID,
			Action:      models.AuditActionCreate,
			Description: "Empresa creada: " + company.Name,
		})

		return c.Status(fiber.StatusCreated).JSON(companyResponse(&company, 0))
	}
}

func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var companies []models.Company
		if err := database.DB.Order("name").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las empresas")
		}

		// Cantidad de usuarios por empresa en una sola pasada
		type countRow struct {
			CompanyID uint
			Total     int64
		}
		var rows []countRow
		database.DB.Model(&models.User{}).
			Select("company_id, COUNT(*) as total").
			Where("company_id IS NOT NULL").
			Group("company_id").
			Scan(&rows)

		counts := make(map[uint]int64, len(rows))
		for _, r := range rows {
			counts[r.CompanyID] = r.Total
		}

		res := make([]CompanyResponse, 0, len(companies))
		for i := range companies {
			res = append(res, companyResponse(&companies[i], counts[companies[i].ID]))
		}

		return c.JSON(res)
	}
}

func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		var company models.Company
		if err := database.DB.Where("slug = ?", slug).First(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empresa no encontrada")
		}

		var userCount int64
		database.DB.Model(&models.User{}).Where("company_id = ?", company.ID).Count(&userCount)

		return c.JSON(companyResponse(&company, userCount))
	}
}

package admin

import (
	"log"
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type InviteUserRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CompanyID uint   `json:"company_id"`
}

type UserResponse struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	CompanyID      *uint  `json:"company_id"`
	Role           string `json:"role"`
	EmailConfirmed bool   `json:"email_confirmed"`
	CreatedAt      string `json:"created_at"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		CompanyID:      u.CompanyID,
		Role:           string(u.Role),
		EmailConfirmed: u.EmailConfirmed,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// INVITACIÓN DE USUARIOS
// ----------------------------------------

// El flujo es: validar -> chequear duplicado -> crear identidad ->
// vincular perfil -> enviar magic link. Los primeros dos pasos no tocan
// nada; a partir del alta cada fallo corta ahí mismo (sin rollback: si el
// vínculo de empresa falla el usuario queda creado sin empresa). El envío
// del link es best-effort, el usuario ya quedó provisionado.
func InviteUserHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body InviteUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.FullName = strings.TrimSpace(body.FullName)

		if body.Email == "" || !strings.Contains(body.Email, "@") {
			return fiber.NewError(fiber.StatusBadRequest, "Email inválido")
		}
		if len(body.FullName) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre requerido")
		}
		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Empresa requerida")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empresa no encontrada")
		}

		// ¿Ya hay un perfil con ese email? No se crea nada.
		var existing models.User
		if err := database.DB.Where("LOWER(email) = ?", body.Email).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Este email ya está registrado")
		}

		// Alta de la identidad (email sin confirmar todavía)
		user := models.User{
			Email:          body.Email,
			Role:           models.RoleClient,
			EmailConfirmed: false,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario: "+err.Error())
		}

		// Vínculo del perfil con nombre y empresa, como paso separado
		if err := database.DB.Model(&user).Updates(map[string]interface{}{
			"full_name":  body.FullName,
			"company_id": body.CompanyID,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo vincular el usuario: "+err.Error())
		}

		// Magic link de activación: si falla, el usuario igual quedó
		// provisionado y puede pedir otro link desde el login.
		if token, err := auth.IssueMagicLink(user.ID); err != nil {
			log.Println("Error generando link de invitación:", err)
		} else {
			linkURL := cfg.SiteURL + "/auth/callback?token=" + token
			if err := auth.SendMagicLinkEmail(cfg, user.Email, linkURL); err != nil {
				log.Println("Error enviando invitación:", err)
			}
		}

		_ = audit.WriteLog(audit.LogOptions{
			CompanyID:   &body.CompanyID,
			UserID:      caller.ID,
			UserEmail:   caller.Email,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionInvite,
			Description: "Usuario invitado: " + user.Email,
		})

		user.FullName = body.FullName
		user.CompanyID = &body.CompanyID

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"user":    userResponse(&user),
		})
	}
}

// ----------------------------------------
// USUARIOS DE UNA EMPRESA
// GET /api/admin/companies/:id/users
// ----------------------------------------

func ListCompanyUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Params("id")

		var company models.Company
		if err := database.DB.First(&company, "id = ?", companyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Empresa no encontrada")
		}

		var users []models.User
		if err := database.DB.
			Where("company_id = ?", company.ID).
			Order("full_name").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, userResponse(&users[i]))
		}

		return c.JSON(res)
	}
}

// ----------------------------------------
// BAJA DE USUARIOS
// ----------------------------------------

func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "ID de usuario requerido")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		// La baja de la identidad arrastra sus magic links pendientes
		if err := database.DB.Where("user_id = ?", user.ID).Delete(&models.MagicLink{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el usuario: "+err.Error())
		}
		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el usuario: "+err.Error())
		}

		_ = audit.WriteLog(audit.LogOptions{
			CompanyID:   user.CompanyID,
			UserID:      caller.ID,
			UserEmail:   caller.Email,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionDelete,
			Description: "Usuario eliminado: " + user.Email,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

package auth

import (
	"log"
	"regexp"
	"strings"

	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MagicLinkRequest struct {
	Email string `json:"email"`
}

// Mismo chequeo permisivo local@dominio.tld que usa el front antes de
// cualquier llamada de red.
var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailShapeRe.MatchString(email)
}

func userJSON(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"role":       user.Role,
		"company_id": user.CompanyID,
	}
}

// Modo contraseña: email+contraseña a cambio de una sesión.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if !ValidEmail(body.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Email inválido")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		// Los invitados que nunca configuraron contraseña solo entran por
		// magic link.
		if user.PasswordHash == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  userJSON(&user),
		})
	}
}

// Modo magic link: solo el email; el link de un solo uso sale por email.
// La respuesta es la misma exista o no el usuario.
func MagicLinkHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MagicLinkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if !ValidEmail(body.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Email inválido")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err == nil {
			token, err := IssueMagicLink(user.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el link de acceso")
			}

			linkURL := cfg.SiteURL + "/auth/callback?token=" + token
			if err := SendMagicLinkEmail(cfg, user.Email, linkURL); err != nil {
				log.Println("Error enviando magic link:", err)
			}
		}

		return c.JSON(fiber.Map{"sent": true})
	}
}

// Canje del magic link por una sesión.
func CallbackHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Falta el token")
		}

		user, err := RedeemMagicLink(token)
		if err != nil {
			return err
		}

		sessionToken, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": sessionToken,
			"user":  userJSON(user),
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		response := userJSON(user)

		if user.CompanyID != nil {
			var company models.Company
			if err := database.DB.First(&company, *user.CompanyID).Error; err == nil {
				response["company"] = fiber.Map{
					"id":   company.ID,
					"name": company.Name,
					"slug": company.Slug,
				}
			}
		}

		return c.JSON(response)
	}
}

// Las sesiones son JWT sin estado; el cierre de sesión es descartar el
// token del lado del cliente.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}
}

package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Los magic links vencen a la hora (el portal promete exactamente eso).
const MagicLinkTTL = time.Hour

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IssueMagicLink genera un token de un solo uso para el usuario y guarda
// solamente su hash. Devuelve el token en claro para armar la URL.
func IssueMagicLink(userID uint) (string, error) {
	token := uuid.NewString()

	link := models.MagicLink{
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(MagicLinkTTL),
	}
	if err := database.DB.Create(&link).Error; err != nil {
		return "", err
	}

	return token, nil
}

// RedeemMagicLink consume el token: lo marca usado, confirma el email del
// usuario y devuelve el perfil. Un token vencido o ya usado falla.
func RedeemMagicLink(token string) (*models.User, error) {
	var link models.MagicLink
	if err := database.DB.Where("token_hash = ?", hashToken(token)).First(&link).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Link de acceso inválido")
	}

	if !link.Usable(time.Now()) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "El link de acceso venció o ya fue usado")
	}

	now := time.Now()
	link.ConsumedAt = &now
	if err := database.DB.Save(&link).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo validar el link")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", link.UserID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Link de acceso inválido")
	}

	if !user.EmailConfirmed {
		user.EmailConfirmed = true
		if err := database.DB.Save(&user).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo confirmar el email")
		}
	}

	return &user, nil
}

package storage

import (
	"path/filepath"
	"strconv"

	"portal-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// ServeSignedFileHandler atiende las URLs firmadas que emite el portal.
// No pide sesión: la firma con vencimiento es la autorización.
func ServeSignedFileHandler(cfg *config.Config) fiber.Handler {
	signer := NewSigner(cfg.StorageSecret)

	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		if path == "" {
			return fiber.NewError(fiber.StatusNotFound, "Archivo no encontrado")
		}

		exp, err := strconv.ParseInt(c.Query("exp"), 10, 64)
		if err != nil || !signer.Verify(path, exp, c.Query("nonce"), c.Query("sig")) {
			return fiber.NewError(fiber.StatusForbidden, "Link de descarga inválido o vencido")
		}

		// Clean con raíz previa evita salirse del file store
		full := filepath.Join(cfg.StoragePath, filepath.Clean("/"+path))
		return c.SendFile(full)
	}
}

package main

import (
	"log"
	"strings"

	"portal-backend/internal/admin"
	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/reports"
	"portal-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth pública: contraseña o magic link, nunca los dos juntos
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/magic-link", auth.MagicLinkHandler(cfg))
	api.Get("/auth/callback", auth.CallbackHandler(cfg))

	// Rutas con sesión
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())

	// Catálogo de reportes (clientes ven solo su empresa)
	protected.Get("/reports", reports.ListReportsHandler())
	protected.Get("/reports/:id", reports.GetReportHandler())
	protected.Get("/reports/:id/download", reports.DownloadReportHandler(cfg))

	// Rutas de administración
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireAdmin())

	// Empresas
	adminRoutes.Post("/companies", admin.CreateCompanyHandler())
	adminRoutes.Get("/companies", admin.ListCompaniesHandler())
	adminRoutes.Get("/companies/:slug", admin.GetCompanyHandler())
	adminRoutes.Get("/companies/:id/users", admin.ListCompanyUsersHandler())

	// Usuarios invitados
	adminRoutes.Post("/users/invite", admin.InviteUserHandler(cfg))
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	// Reportes (lado admin)
	adminRoutes.Post("/reports", reports.CreateReportHandler())
	adminRoutes.Post("/reports/:id/pdf", reports.UploadReportPDFHandler(cfg))
	adminRoutes.Post("/reports/:id/publish", reports.PublishReportHandler())
	adminRoutes.Get("/reports/export", admin.ExportReportsHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Descargas firmadas (la firma es la autorización)
	app.Get("/files/*", storage.ServeSignedFileHandler(cfg))

	// Sitio de marketing estático
	app.Static("/", cfg.StaticDir)

	log.Println("Servidor escuchando en el puerto", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

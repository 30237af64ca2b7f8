package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// URL pública del portal, usada en los magic links
	SiteURL string

	// File store local para los PDFs de reportes
	StoragePath   string
	StorageSecret string // firma de URLs de descarga

	// SMTP para los emails de acceso
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Carpeta del sitio de marketing estático
	StaticDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró .env, usando variables de entorno")
	}

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=portal port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		SiteURL:       getEnv("SITE_URL", "https://portal.tandemstudio.cloud"),
		StoragePath:   getEnv("STORAGE_PATH", "./storage"),
		StorageSecret: getEnv("STORAGE_SECRET", ""),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPass:      getEnv("SMTP_PASS", ""),
		SMTPFrom:      getEnv("SMTP_FROM", "no-reply@tandemstudio.cloud"),
		StaticDir:     getEnv("STATIC_DIR", "./public"),
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable JWT_SECRET no está definida. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if cfg.StorageSecret == "" {
		// Las URLs firmadas caen al secreto de JWT si no hay uno dedicado
		log.Println("[WARN] STORAGE_SECRET no definido, se usa JWT_SECRET para firmar descargas")
		cfg.StorageSecret = cfg.JWTSecret
	}
	if cfg.SMTPHost == "" {
		log.Println("[WARN] SMTP_HOST no definido, los magic links no van a enviarse por email")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

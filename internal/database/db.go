package database

import (
	"log"

	"portal-backend/internal/config"
	"portal-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error de AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos OK. Migración completada.")
}

// Migrate corre el AutoMigrate del esquema completo. Separado de Init para
// poder usarlo también sobre bases de prueba.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Report{},
		&models.MagicLink{},
		&models.AuditLog{},
	)
}

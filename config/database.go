// arl-backend/config/database.go

package config

import (
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nikoblue/arl-backend/models"
)

var DB *gorm.DB

// ConnectDB abre la conexión a PostgreSQL usando la variable de entorno DB_URL.
// Si la conexión falla el servidor no puede hacer nada útil, así que terminamos.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("Error crítico: la variable de entorno DB_URL no está definida.")
		os.Exit(1)
	}

	// TranslateError convierte las violaciones de índice único en
	// gorm.ErrDuplicatedKey, sin depender del código de error del driver.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		slog.Error("Error conectando a la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Conexión exitosa a la base de datos!")
}

// Migrate sincroniza el esquema y garantiza que exista el usuario administrador.
// Se usa tanto en el arranque del servidor como en las pruebas.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Afiliacion{}); err != nil {
		return err
	}
	return seedAdmin(db)
}

// seedAdmin crea el usuario administrador por defecto si no existe.
// Las credenciales se toman de ADMIN_USER / ADMIN_PASSWORD (admin / admin123
// por defecto) y la contraseña siempre se guarda como hash bcrypt.
func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USER")
	if username == "" {
		username = "admin"
	}

	var existente int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&existente).Error; err != nil {
		return err
	}
	if existente > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		slog.Warn("ADMIN_PASSWORD no está definida, se usa la contraseña por defecto.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: username,
		Password: string(hash),
		Nombre:   "Administrador",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("Usuario administrador creado por defecto", "username", username)
	return nil
}

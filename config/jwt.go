// arl-backend/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

// JwtKey firma los tokens de sesión del panel administrativo.
var JwtKey []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "arl-backend-dev-secret"
		slog.Warn("JWT_SECRET no está definida, se usa una clave de desarrollo.")
	}
	JwtKey = []byte(secret)
}

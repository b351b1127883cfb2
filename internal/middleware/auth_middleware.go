// arl-backend/internal/middleware/auth_middleware.go
package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/models"
)

// CachedAdminData son los datos del asesor autenticado que se guardan en caché
// para no consultar la base de datos en cada petición del panel.
type CachedAdminData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
}

// AuthMiddleware protege las rutas del panel administrativo. Valida el token
// JWT del encabezado Authorization y carga los datos del asesor, primero desde
// Redis y si no desde la base de datos.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handleAuthError(c, "Token de autorización no proporcionado")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			handleAuthError(c, "Formato del encabezado Authorization inválido")
			return
		}
		tokenStr := parts[1]

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			handleAuthError(c, "Token inválido o expirado")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Claims del token inválidos")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			handleAuthError(c, "Formato del ID de usuario inválido en el token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("admin:%d:data", userID)
		if config.RDB != nil {
			cachedData, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var adminData CachedAdminData
				if json.Unmarshal([]byte(cachedData), &adminData) == nil {
					setContextAndProceed(c, &adminData)
					return
				}
				slog.Warn("No se pudo deserializar el caché del usuario", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Falló el comando GET de Redis", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			handleAuthError(c, "El usuario del token no existe")
			return
		}

		adminData := CachedAdminData{
			UserID:   dbUser.ID,
			Username: dbUser.Username,
			Nombre:   dbUser.Nombre,
		}

		if config.RDB != nil {
			if jsonData, err := json.Marshal(adminData); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
					slog.Error("No se pudo guardar el usuario en el caché", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &adminData)
	}
}

func setContextAndProceed(c *gin.Context, adminData *CachedAdminData) {
	c.Set("user_id", adminData.UserID)
	c.Set("username", adminData.Username)
	c.Set("nombre", adminData.Nombre)
	c.Next()
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": message})
	c.Abort()
}

// arl-backend/main.go

package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/routes"
)

func main() {
	config.ConnectDB()
	if err := config.Migrate(config.DB); err != nil {
		slog.Error("Error sincronizando el esquema de la base de datos", "error", err)
		os.Exit(1)
	}
	config.ConnectRedis()
	config.InitJWT()
	config.InitUploads()

	r := gin.Default()

	// El asistente de afiliación es una SPA servida desde otro origen.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	slog.Info("Servidor iniciado", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}

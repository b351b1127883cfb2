// arl-backend/internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/handlers"
	"github.com/nikoblue/arl-backend/internal/middleware"
)

// SetupRoutes registra todas las rutas de la aplicación.
func SetupRoutes(r *gin.Engine) {
	// Los documentos subidos se sirven estáticamente; las URLs guardadas en la
	// base de datos son relativas a este prefijo.
	r.Static("/uploads", config.UploadsDir)

	api := r.Group("/api")
	{
		// --- RUTAS PÚBLICAS (asistente de afiliación) ---
		api.POST("/afiliaciones", handlers.CrearAfiliacionHandler)
		api.GET("/afiliaciones/verificar/:codigo", handlers.VerificarAfiliacionHandler)

		// El login es la única ruta pública del panel.
		api.POST("/admin/login", handlers.LoginHandler)

		// --- PANEL ADMINISTRATIVO ---
		// Todas estas rutas exigen un token JWT válido.
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.GET("/afiliaciones", handlers.ListarAfiliacionesHandler)
			admin.GET("/afiliaciones/exportar", handlers.ExportarAfiliacionesHandler)
			admin.PUT("/afiliaciones/:codigo/confirmar", handlers.ConfirmarPagoHandler)
			admin.PUT("/afiliaciones/:codigo/rechazar", handlers.RechazarAfiliacionHandler)
			admin.POST("/afiliaciones/:codigo/documentos", handlers.SubirDocumentoHandler)
			admin.GET("/estadisticas", handlers.EstadisticasHandler)
		}
	}
}

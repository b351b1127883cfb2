// FILE: arl-backend/internal/handlers/admin_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/models"
)

// LoginRequest define las credenciales del panel administrativo.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler autentica a un asesor y emite un token JWT de 24 horas.
// La contraseña se compara contra el hash bcrypt guardado; ante cualquier
// fallo la respuesta es el mismo 401 para no revelar si el usuario existe.
func LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos inválidos: " + err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Credenciales inválidas"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Credenciales inválidas"})
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	if err != nil {
		slog.Error("No se pudo firmar el token de sesión", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo iniciar la sesión"})
		return
	}

	// Invalidamos el caché del middleware para que la próxima petición cargue
	// los datos frescos del usuario.
	if config.RDB != nil {
		cacheKey := fmt.Sprintf("admin:%d:data", user.ID)
		if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
			slog.Warn("No se pudo invalidar el caché del usuario", "error", err, "user_id", user.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"nombre":   user.Nombre,
		},
	})
}

// ListarAfiliacionesHandler devuelve las afiliaciones más recientes primero.
// Acepta un filtro opcional por estado y la paginación estándar page/pageSize.
func ListarAfiliacionesHandler(c *gin.Context) {
	estado := c.Query("estado")

	countQuery := config.DB.Model(&models.Afiliacion{})
	if estado != "" {
		countQuery = countQuery.Where("estado = ?", estado)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando afiliaciones"})
		return
	}

	query := config.DB.Model(&models.Afiliacion{}).Order("created_at desc")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var registros []models.Afiliacion
	if err := query.Scopes(Paginate(c)).Find(&registros).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando afiliaciones"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, registros, totalRows))
}

// NotasRequest transporta las notas del asesor al confirmar o rechazar.
type NotasRequest struct {
	Notas string `json:"notas"`
}

// ConfirmarPagoHandler marca una afiliación como pagada y registra la fecha.
// No hay guarda contra reconfirmar un registro ya pagado o rechazado: es una
// sobreescritura idempotente pensada para un flujo manual de bajo volumen.
func ConfirmarPagoHandler(c *gin.Context) {
	codigo := c.Param("codigo")

	// Cuerpo vacío también es válido: el asesor puede confirmar sin notas.
	var req NotasRequest
	_ = c.ShouldBindJSON(&req)

	var registro models.Afiliacion
	if err := config.DB.Where("codigo_pago = ?", codigo).First(&registro).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Código no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando la afiliación"})
		return
	}

	ahora := time.Now()
	cambios := map[string]interface{}{
		"estado":       models.EstadoPagado,
		"fecha_pago":   ahora,
		"notas_asesor": req.Notas,
	}
	if err := config.DB.Model(&registro).Updates(cambios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo confirmar el pago"})
		return
	}

	slog.Info("Pago confirmado", "codigo", codigo)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pago confirmado"})
}

// RechazarAfiliacionHandler marca una afiliación como rechazada. Nunca toca
// fecha_pago: esa columna solo existe para confirmaciones.
func RechazarAfiliacionHandler(c *gin.Context) {
	codigo := c.Param("codigo")

	var req NotasRequest
	_ = c.ShouldBindJSON(&req)

	var registro models.Afiliacion
	if err := config.DB.Where("codigo_pago = ?", codigo).First(&registro).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Código no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando la afiliación"})
		return
	}

	cambios := map[string]interface{}{
		"estado":       models.EstadoRechazado,
		"notas_asesor": req.Notas,
	}
	if err := config.DB.Model(&registro).Updates(cambios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo rechazar la afiliación"})
		return
	}

	slog.Info("Afiliación rechazada", "codigo", codigo)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Afiliación rechazada"})
}

// EstadisticasHandler agrega los conteos por estado y la suma de ingresos de
// las afiliaciones pagadas. Las sumas se hacen en la base de datos.
func EstadisticasHandler(c *gin.Context) {
	type conteoEstado struct {
		Estado string
		Total  int64
	}

	var conteos []conteoEstado
	if err := config.DB.Model(&models.Afiliacion{}).
		Select("estado, count(*) as total").
		Group("estado").
		Scan(&conteos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error calculando estadísticas"})
		return
	}

	var total, pendientes, pagados, rechazados int64
	for _, conteo := range conteos {
		total += conteo.Total
		switch conteo.Estado {
		case models.EstadoPendiente:
			pendientes = conteo.Total
		case models.EstadoPagado:
			pagados = conteo.Total
		case models.EstadoRechazado:
			rechazados = conteo.Total
		}
	}

	var ingresoTotal int64
	if err := config.DB.Model(&models.Afiliacion{}).
		Where("estado = ?", models.EstadoPagado).
		Select("COALESCE(SUM(precio_total), 0)").
		Scan(&ingresoTotal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error calculando estadísticas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"estadisticas": gin.H{
			"total":        total,
			"pendientes":   pendientes,
			"pagados":      pagados,
			"rechazados":   rechazados,
			"ingresoTotal": ingresoTotal,
		},
	})
}

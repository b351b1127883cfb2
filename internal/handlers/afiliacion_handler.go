// FILE: arl-backend/internal/handlers/afiliacion_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/afiliacion"
	"github.com/nikoblue/arl-backend/models"
)

// CrearAfiliacionRequest define la estructura de los datos entrantes del
// asistente de registro. tiempoCobertura llega como texto ("1", "3", "6", "12")
// porque así lo envía el formulario.
type CrearAfiliacionRequest struct {
	CodigoPago      string `json:"codigoPago"`
	Nombres         string `json:"nombres" binding:"required"`
	Apellidos       string `json:"apellidos" binding:"required"`
	TipoDocumento   string `json:"tipoDocumento" binding:"required"`
	NumeroDocumento string `json:"numeroDocumento" binding:"required"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Genero          string `json:"genero"`
	Email           string `json:"email" binding:"required,email"`
	Telefono        string `json:"telefono" binding:"required"`
	Direccion       string `json:"direccion" binding:"required"`
	Ciudad          string `json:"ciudad" binding:"required"`
	Departamento    string `json:"departamento" binding:"required"`
	NivelRiesgo     string `json:"nivelRiesgo" binding:"required"`
	TiempoCobertura string `json:"tiempoCobertura" binding:"required"`
}

// CrearAfiliacionHandler registra una nueva afiliación en estado pendiente.
//
// El precio total siempre se recalcula en el servidor a partir del nivel de
// riesgo y los meses de cobertura; nunca se confía en un precio del cliente.
// Si el cliente no trae código de pago, se genera uno aquí. Un código
// duplicado no es un error: el formulario puede reenviarse, así que se
// responde éxito con el código ya registrado.
func CrearAfiliacionHandler(c *gin.Context) {
	var req CrearAfiliacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos inválidos: " + err.Error()})
		return
	}

	meses, err := strconv.Atoi(req.TiempoCobertura)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tiempo de cobertura inválido: " + req.TiempoCobertura})
		return
	}

	precioTotal, err := afiliacion.CalcularPrecio(req.NivelRiesgo, meses)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	codigo := req.CodigoPago
	if codigo == "" {
		codigo = afiliacion.GenerarCodigoPago(time.Now())
	}

	registro := models.Afiliacion{
		CodigoPago:      codigo,
		Nombres:         req.Nombres,
		Apellidos:       req.Apellidos,
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		FechaNacimiento: req.FechaNacimiento,
		Genero:          req.Genero,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		Ciudad:          req.Ciudad,
		Departamento:    req.Departamento,
		NivelRiesgo:     req.NivelRiesgo,
		MesesCobertura:  meses,
		PrecioTotal:     precioTotal,
		Estado:          models.EstadoPendiente,
	}

	if err := config.DB.Create(&registro).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Rama explícita de conflicto: buscamos el registro existente y
			// respondemos éxito con sus datos (creación idempotente).
			var existente models.Afiliacion
			if err := config.DB.Where("codigo_pago = ?", codigo).First(&existente).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo recuperar la afiliación existente"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"message":     "La afiliación ya existe",
				"codigoPago":  existente.CodigoPago,
				"precioTotal": existente.PrecioTotal,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo registrar la afiliación: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Afiliación registrada",
		"codigoPago":  registro.CodigoPago,
		"precioTotal": registro.PrecioTotal,
	})
}

// VerificarAfiliacionHandler devuelve el estado de pago y los documentos de
// una afiliación. Lo usa tanto el sondeo del asistente como la recuperación
// de documentos por código.
func VerificarAfiliacionHandler(c *gin.Context) {
	codigo := c.Param("codigo")

	var registro models.Afiliacion
	if err := config.DB.Where("codigo_pago = ?", codigo).First(&registro).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Código no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando la afiliación"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"pagado":         registro.Estado == models.EstadoPagado,
		"estado":         registro.Estado,
		"certificadoUrl": registro.CertificadoURL,
		"carnetUrl":      registro.CarnetURL,
		"fechaPago":      registro.FechaPago,
	})
}

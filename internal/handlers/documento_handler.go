// FILE: arl-backend/internal/handlers/documento_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/afiliacion"
	"github.com/nikoblue/arl-backend/models"
)

// SubirDocumentoHandler recibe el certificado o el carnet de una afiliación
// como multipart (campo de archivo "documento", campo de formulario "tipo") y
// guarda el archivo bajo el directorio de uploads con la clave
// {codigo}_{tipo}{ext}. Solo se aceptan .pdf/.jpg/.jpeg/.png de hasta 10 MiB,
// y la afiliación debe estar pagada antes de adjuntar documentos.
//
// La escritura del archivo y la actualización de la URL no son atómicas: si el
// UPDATE falla queda un archivo huérfano en disco, aceptable para este flujo.
func SubirDocumentoHandler(c *gin.Context) {
	// Margen de 512 bytes sobre el límite para el resto del formulario.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, afiliacion.TamanoMaximoArchivo+512)

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

	if registro.Estado != models.EstadoPagado {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "La afiliación debe estar pagada antes de adjuntar documentos"})
		return
	}

	tipo := c.PostForm("tipo")
	columna, err := afiliacion.ColumnaDocumento(tipo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	file, err := c.FormFile("documento")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Archivo no proporcionado o demasiado grande"})
		return
	}

	if file.Size > afiliacion.TamanoMaximoArchivo {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El archivo supera el tamaño máximo de 10 MB"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if !afiliacion.ExtensionPermitida(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tipo de archivo no permitido"})
		return
	}

	nombreArchivo := afiliacion.NombreArchivo(codigo, tipo, ext)
	rutaArchivo := filepath.Join(config.UploadsDir, nombreArchivo)
	if err := c.SaveUploadedFile(file, rutaArchivo); err != nil {
		slog.Error("No se pudo guardar el archivo subido", "error", err, "codigo", codigo, "tipo", tipo)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo guardar el archivo"})
		return
	}

	fileURL := "/uploads/" + nombreArchivo
	if err := config.DB.Model(&registro).Update(columna, fileURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo registrar el documento"})
		return
	}

	slog.Info("Documento adjuntado", "codigo", codigo, "tipo", tipo)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": tipo + " subido", "url": fileURL})
}

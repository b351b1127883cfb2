// FILE: arl-backend/internal/handlers/export_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/afiliacion"
	"github.com/nikoblue/arl-backend/models"
)

// ExportarAfiliacionesHandler genera un archivo Excel con todas las
// afiliaciones para el archivo de la empresa. Respeta el filtro opcional por
// estado, con las más recientes primero.
func ExportarAfiliacionesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Afiliacion{}).Order("created_at desc")
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var registros []models.Afiliacion
	if err := query.Find(&registros).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error consultando afiliaciones"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Afiliaciones"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Código de Pago", "Nombres", "Apellidos", "Documento", "Email", "Teléfono",
		"Ciudad", "Departamento", "Nivel de Riesgo", "Meses", "Precio Total",
		"Estado", "Fecha de Creación", "Fecha de Pago", "Notas del Asesor",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range registros {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.CodigoPago)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Nombres)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Apellidos)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.TipoDocumento+" "+r.NumeroDocumento)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Telefono)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.Ciudad)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.Departamento)
		nivel := r.NivelRiesgo
		if nombre, ok := afiliacion.NombresNivel[nivel]; ok {
			nivel = fmt.Sprintf("%s (%s)", nivel, nombre)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), nivel)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), r.MesesCobertura)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), r.PrecioTotal)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), r.Estado)
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), r.CreatedAt.Format("02/01/2006 15:04"))
		if r.FechaPago != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("N%d", row), r.FechaPago.Format("02/01/2006 15:04"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("O%d", row), r.NotasAsesor)
	}

	fileName := fmt.Sprintf("afiliaciones_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "No se pudo generar el archivo"})
	}
}

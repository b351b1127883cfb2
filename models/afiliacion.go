// arl-backend/models/afiliacion.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados del ciclo de vida de una afiliación. Una afiliación nace pendiente y
// solo pasa a pagado o rechazado; ningún endpoint la devuelve a pendiente.
const (
	EstadoPendiente = "pendiente"
	EstadoPagado    = "pagado"
	EstadoRechazado = "rechazado"
)

// Afiliacion es una solicitud de afiliación ARL: los datos del solicitante, el
// plan elegido y el estado del pago manual. Los registros nunca se borran.
type Afiliacion struct {
	gorm.Model
	CodigoPago string `json:"codigoPago" gorm:"size:50;uniqueIndex;not null"`

	// --- DATOS PERSONALES ---
	Nombres         string `json:"nombres" gorm:"size:100"`
	Apellidos       string `json:"apellidos" gorm:"size:100"`
	TipoDocumento   string `json:"tipoDocumento" gorm:"size:20"`
	NumeroDocumento string `json:"numeroDocumento" gorm:"size:50"`
	FechaNacimiento string `json:"fechaNacimiento" gorm:"size:20"`
	Genero          string `json:"genero" gorm:"size:10"`
	Email           string `json:"email" gorm:"size:100"`
	Telefono        string `json:"telefono" gorm:"size:20"`
	Direccion       string `json:"direccion" gorm:"type:text"`
	Ciudad          string `json:"ciudad" gorm:"size:50"`
	Departamento    string `json:"departamento" gorm:"size:50"`

	// --- PLAN SELECCIONADO ---
	NivelRiesgo    string `json:"nivelRiesgo" gorm:"size:10"`
	MesesCobertura int    `json:"mesesCobertura"`
	PrecioTotal    int64  `json:"precioTotal"` // COP, pesos enteros

	// --- ESTADO DEL PAGO ---
	Estado      string     `json:"estado" gorm:"size:20;default:pendiente"`
	FechaPago   *time.Time `json:"fechaPago"` // solo se asigna al confirmar el pago
	NotasAsesor string     `json:"notasAsesor" gorm:"type:text"`

	// --- DOCUMENTOS GENERADOS ---
	CertificadoURL string `json:"certificadoUrl" gorm:"type:text"`
	CarnetURL      string `json:"carnetUrl" gorm:"type:text"`
}

func (Afiliacion) TableName() string {
	return "afiliaciones"
}

// arl-backend/internal/afiliacion/documentos.go

package afiliacion

import (
	"fmt"
	"strings"
)

// Tipos de documento que el asesor puede adjuntar a una afiliación.
const (
	DocCertificado = "certificado"
	DocCarnet      = "carnet"
)

// TamanoMaximoArchivo limita los archivos subidos a 10 MiB.
const TamanoMaximoArchivo = 10 << 20

var extensionesPermitidas = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ColumnaDocumento devuelve la columna de la tabla afiliaciones que guarda la
// URL del tipo de documento indicado.
func ColumnaDocumento(tipo string) (string, error) {
	switch tipo {
	case DocCertificado:
		return "certificado_url", nil
	case DocCarnet:
		return "carnet_url", nil
	default:
		return "", fmt.Errorf("tipo de documento inválido: %q", tipo)
	}
}

// ExtensionPermitida acepta .pdf, .jpg, .jpeg y .png sin distinguir mayúsculas.
func ExtensionPermitida(ext string) bool {
	return extensionesPermitidas[strings.ToLower(ext)]
}

// NombreArchivo arma la clave de almacenamiento {codigo}_{tipo}{ext}.
// Volver a subir el mismo tipo sobreescribe el archivo anterior: gana la
// última escritura, sin versionado.
func NombreArchivo(codigo, tipo, ext string) string {
	return fmt.Sprintf("%s_%s%s", codigo, tipo, strings.ToLower(ext))
}

// arl-backend/internal/afiliacion/codigo.go

package afiliacion

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerarCodigoPago produce un código con la forma PAG-YYYYMMDD-NNNN, donde
// NNNN es un aleatorio de 0 a 9999 con ceros a la izquierda. No se verifica
// unicidad aquí: el índice único de la tabla la garantiza, y un choque se
// trata como reintento del mismo registro, no como error.
func GenerarCodigoPago(ahora time.Time) string {
	return fmt.Sprintf("PAG-%s-%04d", ahora.Format("20060102"), rand.Intn(10000))
}

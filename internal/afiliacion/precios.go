// arl-backend/internal/afiliacion/precios.go

// Package afiliacion contiene las reglas de negocio puras de una afiliación
// ARL: tarifas por nivel de riesgo, cálculo del precio, generación del código
// de pago y validación de los documentos adjuntos.
package afiliacion

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PreciosMensuales define la tarifa mensual en COP por nivel de riesgo.
var PreciosMensuales = map[string]int64{
	"I":   20000,
	"II":  28000,
	"III": 36000,
	"IV":  44000,
	"V":   52000,
}

// NombresNivel se usa en reportes y exportaciones.
var NombresNivel = map[string]string{
	"I":   "Riesgo Mínimo",
	"II":  "Riesgo Bajo",
	"III": "Riesgo Medio",
	"IV":  "Riesgo Alto",
	"V":   "Riesgo Máximo",
}

// Descuentos define el porcentaje de descuento según los meses de cobertura.
// Solo estos periodos son válidos.
var Descuentos = map[int]int64{
	1:  0,
	3:  5,
	6:  10,
	12: 15,
}

// CalcularPrecio devuelve el precio total en pesos enteros para un nivel de
// riesgo y un periodo de cobertura: tarifa mensual × meses, menos el descuento
// del periodo, redondeado al peso más cercano. La aritmética usa decimales
// para no acumular error de punto flotante en el descuento.
func CalcularPrecio(nivel string, meses int) (int64, error) {
	precioMes, ok := PreciosMensuales[nivel]
	if !ok {
		return 0, fmt.Errorf("nivel de riesgo inválido: %q", nivel)
	}

	descuento, ok := Descuentos[meses]
	if !ok {
		return 0, fmt.Errorf("tiempo de cobertura inválido: %d meses", meses)
	}

	factor := decimal.NewFromInt(100 - descuento).Div(decimal.NewFromInt(100))
	total := decimal.NewFromInt(precioMes).
		Mul(decimal.NewFromInt(int64(meses))).
		Mul(factor).
		Round(0)

	return total.IntPart(), nil
}

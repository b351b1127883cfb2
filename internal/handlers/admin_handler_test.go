package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/models"
)

func TestLogin(t *testing.T) {
	r := setupTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "Administrador", user["nombre"])
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	r := setupTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin",
		"password": "incorrecta",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Usuario inexistente: misma respuesta.
	w = doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"username": "otro",
		"password": "admin123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRutasAdminExigenToken(t *testing.T) {
	r := setupTestAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones", nil, "token-invalido")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := adminToken(t, r)
	w = doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfirmarPago(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)
	codigo := crearAfiliacion(t, r, "PAG-20260828-0100")

	w := doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+codigo+"/confirmar", gin.H{
		"notas": "Pago por Nequi verificado",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var registro models.Afiliacion
	require.NoError(t, config.DB.Where("codigo_pago = ?", codigo).First(&registro).Error)
	assert.Equal(t, models.EstadoPagado, registro.Estado)
	require.NotNil(t, registro.FechaPago)
	assert.Equal(t, "Pago por Nequi verificado", registro.NotasAsesor)

	// El sondeo del asistente ahora reporta pagado.
	w = doJSON(t, r, http.MethodGet, "/api/afiliaciones/verificar/"+codigo, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["pagado"])
	assert.NotNil(t, body["fechaPago"])
}

func TestConfirmarPagoCodigoDesconocido(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/PAG-19990101-0000/confirmar", gin.H{}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRechazarAfiliacion(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)
	codigo := crearAfiliacion(t, r, "PAG-20260828-0101")

	w := doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+codigo+"/rechazar", gin.H{
		"notas": "Comprobante ilegible",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var registro models.Afiliacion
	require.NoError(t, config.DB.Where("codigo_pago = ?", codigo).First(&registro).Error)
	assert.Equal(t, models.EstadoRechazado, registro.Estado)
	// Rechazar jamás asigna fecha de pago.
	assert.Nil(t, registro.FechaPago)
	assert.Equal(t, "Comprobante ilegible", registro.NotasAsesor)
}

func TestListarAfiliaciones(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)

	primera := crearAfiliacion(t, r, "PAG-20260828-0200")
	segunda := crearAfiliacion(t, r, "PAG-20260828-0201")
	doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+primera+"/rechazar", gin.H{}, token)

	w := doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.EqualValues(t, 2, body["totalRows"])

	// Filtro por estado.
	w = doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones?estado=pendiente", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data, _ = body["data"].([]interface{})
	require.Len(t, data, 1)
	fila, _ := data[0].(map[string]interface{})
	assert.Equal(t, segunda, fila["codigoPago"])

	// Paginación.
	w = doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones?page=1&pageSize=1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data, _ = body["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.EqualValues(t, 2, body["totalRows"])
	assert.EqualValues(t, 2, body["totalPages"])
}

func TestEstadisticas(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)

	// Dos pagadas (57000 y 204000), una pendiente y una rechazada.
	pagada1 := crearAfiliacion(t, r, "PAG-20260828-0300")

	solicitud := solicitudBase("PAG-20260828-0301")
	solicitud["tiempoCobertura"] = "12"
	w := doJSON(t, r, http.MethodPost, "/api/afiliaciones", solicitud, "")
	require.Equal(t, http.StatusOK, w.Code)
	pagada2 := "PAG-20260828-0301"

	crearAfiliacion(t, r, "PAG-20260828-0302")
	rechazada := crearAfiliacion(t, r, "PAG-20260828-0303")

	doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+pagada1+"/confirmar", gin.H{}, token)
	doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+pagada2+"/confirmar", gin.H{}, token)
	doJSON(t, r, http.MethodPut, "/api/admin/afiliaciones/"+rechazada+"/rechazar", gin.H{}, token)

	w = doJSON(t, r, http.MethodGet, "/api/admin/estadisticas", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	stats, ok := body["estadisticas"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 4, stats["total"])
	assert.EqualValues(t, 2, stats["pagados"])
	assert.EqualValues(t, 1, stats["pendientes"])
	assert.EqualValues(t, 1, stats["rechazados"])
	assert.EqualValues(t, 261000, stats["ingresoTotal"])
}

func TestExportarAfiliaciones(t *testing.T) {
	r := setupTestAPI(t)
	token := adminToken(t, r)
	crearAfiliacion(t, r, "PAG-20260828-0400")

	w := doJSON(t, r, http.MethodGet, "/api/admin/afiliaciones/exportar", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "afiliaciones_")
	assert.NotZero(t, w.Body.Len())
}

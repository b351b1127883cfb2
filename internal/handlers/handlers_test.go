package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nikoblue/arl-backend/config"
	"github.com/nikoblue/arl-backend/internal/routes"
)

// setupTestAPI levanta el router real contra una base SQLite en memoria.
// Cada prueba recibe su propia base, con el esquema migrado y el usuario
// administrador sembrado (admin / admin123).
func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Con una base en memoria cada conexión nueva vería una base vacía;
	// limitamos el pool a una sola conexión.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	config.DB = db
	config.RDB = nil
	config.JwtKey = []byte("clave-de-prueba")
	config.UploadsDir = t.TempDir()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doJSON ejecuta una petición con cuerpo JSON y devuelve la respuesta grabada.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody deserializa el cuerpo JSON de la respuesta.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// adminToken inicia sesión con el administrador sembrado y devuelve el token.
func adminToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login del administrador falló: %s", w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// solicitudBase arma un cuerpo válido de creación de afiliación.
func solicitudBase(codigo string) gin.H {
	return gin.H{
		"codigoPago":      codigo,
		"nombres":         "Juan Carlos",
		"apellidos":       "Pérez García",
		"tipoDocumento":   "CC",
		"numeroDocumento": "1234567890",
		"fechaNacimiento": "1990-05-14",
		"genero":          "M",
		"email":           "juan@ejemplo.com",
		"telefono":        "3001234567",
		"direccion":       "Calle 123 # 45-67",
		"ciudad":          "Bogotá",
		"departamento":    "Cundinamarca",
		"nivelRiesgo":     "I",
		"tiempoCobertura": "3",
	}
}

// crearAfiliacion registra una afiliación de prueba y devuelve su código.
func crearAfiliacion(t *testing.T, r *gin.Engine, codigo string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/afiliaciones", solicitudBase(codigo), "")
	require.Equal(t, http.StatusOK, w.Code, "no se pudo crear la afiliación: %s", w.Body.String())
	body := decodeBody(t, w)
	creado, _ := body["codigoPago"].(string)
	require.NotEmpty(t, creado)
	return creado
}

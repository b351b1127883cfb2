// arl-backend/config/uploads.go
package config

import (
	"log/slog"
	"os"
)

// UploadsDir es el directorio donde se guardan certificados y carnets subidos
// por el asesor. Se sirve estáticamente bajo /uploads.
var UploadsDir = "./uploads"

func InitUploads() {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		UploadsDir = dir
	}
	if err := os.MkdirAll(UploadsDir, os.ModePerm); err != nil {
		slog.Error("No se pudo crear el directorio de uploads", "dir", UploadsDir, "error", err)
		os.Exit(1)
	}
}

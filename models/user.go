// arl-backend/models/user.go

package models

import "gorm.io/gorm"

// User es la cuenta de un asesor del panel administrativo.
// Password siempre contiene un hash bcrypt, nunca texto plano.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Password string `json:"-" gorm:"size:100;not null"`
	Nombre   string `json:"nombre" gorm:"size:100"`
}

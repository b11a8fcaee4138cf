package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são emitidas pelo serviço de sessão externo; esta API apenas as valida
type Claims struct {
	UserID     int    `json:"user_id"`
	UserEmail  string `json:"email"`
	UserRoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}

package authenticating

import (
	"errors"
)

// Tipos de erros de autenticação personalizados
var (
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrMissingSubject        = errors.New("token sem usuário")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")
)

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInsufficientPrivilege) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingSubject)
}

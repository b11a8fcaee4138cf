package account

import (
	"errors"
)

// Erros específicos para o contexto de contas
var (
	// Erros de validação
	ErrAccountIDRequired = errors.New("account ID is required")

	// Erros de serviços externos
	ErrNoAdAccounts = errors.New("no ad account available for this user")

	// Erros de credencial
	ErrEncryptToken = errors.New("error encrypting access token")

	// Erros de geração de identificadores
	ErrGenerateState = errors.New("error generating OAuth state")
)

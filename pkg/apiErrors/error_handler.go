package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrIntegrationToken      = "AUTH_010" // Token da integração Meta ausente ou expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrMethodNotAllowed    = "VAL_004" // Método HTTP não suportado pela rota

	// Recursos (3000-3999)
	ErrResourceNotFound = "RES_001" // Conta ou campanha não encontrada

	// Gerador de narrativas (4000-4999)
	ErrAINotConfigured    = "AI_001" // Serviço de IA não configurado
	ErrAIGenerationFailed = "AI_002" // Falha ao gerar narrativa

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrIntegrationToken:      http.StatusUnauthorized,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrResourceNotFound:      http.StatusNotFound,
	ErrAINotConfigured:       http.StatusServiceUnavailable,
	ErrAIGenerationFailed:    http.StatusBadGateway,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// Ordem importa: o primeiro tipo encontrado na cadeia define o código
var kindCodes = []struct {
	kind domain.Kind
	code string
}{
	{domain.KindValidation, ErrInvalidRequest},
	{domain.KindNotFound, ErrResourceNotFound},
	{domain.KindNotConfigured, ErrAINotConfigured},
	{domain.KindCredential, ErrIntegrationToken},
	{domain.KindGeneration, ErrAIGenerationFailed},
	{domain.KindExternalAPI, ErrExternalService},
	{domain.KindPersistence, ErrDatabaseOperation},
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz a classificação de um erro de domínio em código de API
func CodeFor(err error) string {
	for _, kc := range kindCodes {
		if domain.IsKind(err, kc.kind) {
			return kc.code
		}
	}
	return ErrInternalServer
}

// WriteDomainError escreve a resposta a partir do tipo de erro de domínio
func WriteDomainError(w http.ResponseWriter, err error, message string) {
	WriteError(w, CodeFor(err), message, nil)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

package metadomain

import "strings"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado ou invalidado.
// Código 190 indica token inválido; subcódigos 460, 463 e 467 vêm com OAuthException.
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited cobre os códigos de limite de chamadas da Graph API
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613, 80004:
		return true
	}
	return false
}

// ContainsTokenExpirationMessage cobre respostas sem corpo JSON estruturado
func ContainsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}

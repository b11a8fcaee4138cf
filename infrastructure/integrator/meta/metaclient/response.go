package metaclient

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

const maxErrorBody = 512

// APIError carrega os detalhes de uma resposta de erro da Graph API
type APIError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("graph api status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("graph api status %d code %d: %s", e.StatusCode, e.Code, e.Message)
}

func parseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// handleResponse lê o corpo e converte respostas de erro em CredentialError ou ExternalAPIError
func handleResponse(edge string, resp *http.Response) ([]byte, error) {
	op := "meta." + edge

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.KindExternalAPI, op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: truncate(string(body))}

	errorResp, parseErr := parseErrorResponse(body)
	if parseErr == nil && (errorResp.Error.Code != 0 || errorResp.Error.Message != "") {
		apiErr.Code = errorResp.Error.Code
		apiErr.Subcode = errorResp.Error.ErrorSubcode
		apiErr.Type = errorResp.Error.Type
		apiErr.Message = errorResp.Error.Message

		if errorResp.IsTokenExpired() {
			logrus.WithFields(logrus.Fields{
				"edge":    edge,
				"code":    apiErr.Code,
				"subcode": apiErr.Subcode,
			}).Warn("meta: token de acesso rejeitado")
			return nil, domain.NewError(domain.KindCredential, op, fmt.Errorf("%w: %w", domain.ErrTokenExpired, apiErr))
		}

		if errorResp.IsRateLimited() {
			logrus.WithFields(logrus.Fields{
				"edge": edge,
				"code": apiErr.Code,
			}).Warn("meta: limite de requisições atingido")
		}

		return nil, domain.NewError(domain.KindExternalAPI, op, apiErr)
	}

	if metadomain.ContainsTokenExpirationMessage(string(body)) {
		return nil, domain.NewError(domain.KindCredential, op, fmt.Errorf("%w: %w", domain.ErrTokenExpired, apiErr))
	}

	return nil, domain.NewError(domain.KindExternalAPI, op, apiErr)
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody]
}

package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
	"github.com/vfg2006/tracionar-api/pkg/log"
	"github.com/vfg2006/tracionar-api/pkg/middleware"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite do corpo aceito nas rotas que recebem JSON
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("empty request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.L.WithError(err).Error("http: erro ao codificar a resposta")
	}
}

func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return errors.Wrap(err, "invalid request body")
}

// currentUser lê o usuário autenticado; sem sessão a resposta já é escrita e ok é false
func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return 0, false
	}
	return claims.UserID, true
}

// writeServiceError traduz o tipo do erro de domínio em resposta padronizada.
// Erros de validação carregam os campos rejeitados em details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := apiErrors.CodeFor(err)

	logger := log.ForContext(r.Context()).WithError(err).WithField("code", code)
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error("http: " + message)
	} else {
		logger.Warn("http: " + message)
	}

	var details any
	if fields := validation.Details(err); len(fields) > 0 {
		details = fields
	}

	apiErrors.WriteError(w, code, message, details)
}

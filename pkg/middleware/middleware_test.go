package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/usecases/authenticating"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
	"github.com/vfg2006/tracionar-api/pkg/log"
)

func newAuthenticator() authenticating.Authenticator {
	return authenticating.NewService(&config.Config{Auth: config.Auth{Secret: "segredo-jwt"}})
}

func signedToken(t *testing.T, auth authenticating.Authenticator, roleID int, ttl time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(domain.Claims{UserID: 7, UserRoleID: roleID}, ttl)
	require.NoError(t, err)
	return token
}

func decodeAPIError(t *testing.T, body io.Reader) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func TestAuthMiddleware(t *testing.T) {
	auth := newAuthenticator()

	var seen *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(auth)(next)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
		wantUser   bool
	}{
		{name: "healthcheck é público", path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "metrics é público", path: "/metrics", wantStatus: http.StatusOK},
		{name: "sem cabeçalho", path: "/v1/accounts", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "sem prefixo Bearer", path: "/v1/accounts", header: "Token abc", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "token inválido", path: "/v1/accounts", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "token expirado", path: "/v1/accounts", header: "Bearer " + signedToken(t, auth, RoleClient, -time.Minute), wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrExpiredToken},
		{name: "token válido", path: "/v1/accounts", header: "Bearer " + signedToken(t, auth, RoleClient, time.Hour), wantStatus: http.StatusOK, wantUser: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec.Body).Code)
			}
			if tt.wantUser {
				require.NotNil(t, seen)
				assert.Equal(t, 7, seen.UserID)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	auth := newAuthenticator()
	handler := AuthMiddleware(auth)(AdminOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name       string
		roleID     int
		wantStatus int
	}{
		{name: "administrador", roleID: RoleAdmin, wantStatus: http.StatusNoContent},
		{name: "cliente", roleID: RoleClient, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, auth, tt.roleID, time.Hour))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("sem sessão", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AllRoles()(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
		req.Header.Set("Origin", "https://malicioso.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight encerra a cadeia", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/accounts", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var fromCtx string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	t.Run("propaga o ID recebido", func(t *testing.T) {
		incoming := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
		req.Header.Set(log.CorrelationIDHeader, incoming)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, incoming, fromCtx)
		assert.Equal(t, incoming, rec.Header().Get(log.CorrelationIDHeader))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("gera um ID quando ausente", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

		assert.NotEmpty(t, fromCtx)
		assert.Equal(t, fromCtx, rec.Header().Get(log.CorrelationIDHeader))
	})
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		level   string
		message string
	}{
		{name: "requisição concluída", status: http.StatusOK, level: "level=info", message: "http: requisição concluída"},
		{name: "requisição rejeitada", status: http.StatusNotFound, level: "level=warning", message: "http: requisição rejeitada"},
		{name: "requisição com erro interno", status: http.StatusInternalServerError, level: "level=error", message: "http: requisição falhou"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			defer logrus.SetOutput(os.Stderr)
			log.SetupTestLogger(&buf)

			handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.message)
			assert.Contains(t, out, "status_code="+strconv.Itoa(tt.status))
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec.Body).Code)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

// Pinger verifica a disponibilidade do banco de dados
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde 503 quando o banco não responde ao ping.
// Sem pinger configurado, só confirma que o processo está no ar.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ok",
			"time":   time.Now().UTC(),
		}

		if db == nil {
			writeJSON(w, http.StatusOK, body)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logrus.WithError(err).Error("healthcheck: falha no ping do banco de dados")
			body["status"] = "degraded"
			body["database"] = "unavailable"
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}

		body["database"] = "ok"
		writeJSON(w, http.StatusOK, body)
	})
}

package handler

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
	"github.com/vfg2006/tracionar-api/pkg/log"
)

// Tipos de cron job aceitos em /v1/cron/:type/run
const (
	CronJobTypeSync       = "sync"
	CronJobTypeCacheSweep = "cache-sweep"
	CronJobTypeAll        = "all"
)

// CronJob é implementado pelos serviços do pacote scheduler
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices associa cada tipo ao seu serviço
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		var selected []string
		switch {
		case cronType == CronJobTypeAll:
			selected = services.types()
		case services[cronType] != nil:
			selected = []string{cronType}
		default:
			accepted := append(services.types(), CronJobTypeAll)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+strings.Join(accepted, ", "), nil)
			return
		}

		// a rodada manual sobrevive ao fim da requisição
		ctx := context.WithoutCancel(r.Context())

		started := make(map[string]bool, len(selected))
		for _, t := range selected {
			started[t] = services[t].TriggerManualSync(ctx)
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: execução manual solicitada")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada",
			"type":    cronType,
			"started": started,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for t, svc := range services {
			status[t] = svc.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/usecases/insighting"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
)

func GenerateInsights(service insighting.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.InsightRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		payload, err := service.GenerateInsights(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar insights")
			return
		}

		writeJSON(w, http.StatusOK, payload)
	})
}

func AnalyzeCampaign(service insighting.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CampaignAnalysisRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		analysis, err := service.AnalyzeCampaign(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao analisar campanha")
			return
		}

		writeJSON(w, http.StatusOK, analysis)
	})
}

func InsightHistory(service insighting.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := domain.InsightHistoryFilter{Type: query.Get("type")}

		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um número inteiro positivo", nil)
				return
			}
			filter.Limit = limit
		}

		insights, err := service.History(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar histórico de insights")
			return
		}

		writeJSON(w, http.StatusOK, insights)
	})
}

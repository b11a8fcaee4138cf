package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/usecases/analyzing"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

func accountIDParam(r *http.Request) *string {
	if id := r.URL.Query().Get("account_id"); id != "" {
		return &id
	}
	return nil
}

func Dashboard(service analyzing.AnalyticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		startDate, err := utils.ParseDate(query.Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(query.Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), userID, domain.DashboardRequest{
			AccountID: accountIDParam(r),
			Period:    domain.Period(query.Get("period")),
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar dashboard")
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	})
}

func CriticalCampaigns(service analyzing.AnalyticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		campaigns, err := service.GetCriticalCampaigns(r.Context(), userID, accountIDParam(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar campanhas críticas")
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	})
}

func SetDesiredCPA(service analyzing.AnalyticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.SetDesiredCPARequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		campaign, err := service.SetDesiredCPA(r.Context(), userID, id, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao definir CPA desejado")
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	})
}

func Alerts(service analyzing.AnalyticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		alerts, err := service.GetAlerts(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao avaliar alertas")
			return
		}

		writeJSON(w, http.StatusOK, alerts)
	})
}

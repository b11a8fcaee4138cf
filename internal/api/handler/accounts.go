package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/usecases/account"
	"github.com/vfg2006/tracionar-api/internal/usecases/syncing"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
)

func MetaAuthURL(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.AuthURL()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar URL de autorização")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func ConnectAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.ConnectAccountRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		acc, err := service.Connect(r.Context(), userID, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao conectar conta de anúncios")
			return
		}

		writeJSON(w, http.StatusCreated, acc)
	})
}

func ListAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		accounts, err := service.List(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar contas")
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	})
}

func DisconnectAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Disconnect(r.Context(), userID, id); err != nil {
			writeServiceError(w, r, err, "Erro ao desconectar conta")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// RequestSync responde assim que a execução é aceita; o resultado fica no histórico de sincronizações
func RequestSync(service syncing.SyncRequester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		// corpo opcional: sem ele a sincronização é incremental
		var req domain.SyncRequest
		if err := decodeBody(r, &req); err != nil && err != errEmptyBody {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		ack, err := service.RequestSync(r.Context(), userID, id, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao iniciar sincronização")
			return
		}

		writeJSON(w, http.StatusAccepted, ack)
	})
}

func AccountSyncStatus(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		status, err := service.SyncStatus(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consultar status da sincronização")
			return
		}

		writeJSON(w, http.StatusOK, status)
	})
}

func AccountCampaigns(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaigns, err := service.Campaigns(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar campanhas")
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	})
}

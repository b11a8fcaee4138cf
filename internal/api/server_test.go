package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/tracionar-api/internal/api/handler"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
	accountmocks "github.com/vfg2006/tracionar-api/internal/usecases/account/mocks"
	analyzingmocks "github.com/vfg2006/tracionar-api/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/tracionar-api/internal/usecases/authenticating"
	insightingmocks "github.com/vfg2006/tracionar-api/internal/usecases/insighting/mocks"
	syncingmocks "github.com/vfg2006/tracionar-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/tracionar-api/pkg/apiErrors"
	"github.com/vfg2006/tracionar-api/pkg/middleware"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync(context.Context) bool {
	f.triggered++
	return true
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"triggered": f.triggered}
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

type apiFixture struct {
	accounts  *accountmocks.MockAccountService
	syncs     *syncingmocks.MockSyncRequester
	analytics *analyzingmocks.MockAnalyticsService
	insights  *insightingmocks.MockInsightService
	cron      *fakeCronJob
	db        *fakePinger
	auth      authenticating.Authenticator
	handler   http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		App:  config.App{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: config.Auth{Secret: "segredo-jwt"},
	}

	f := &apiFixture{
		accounts:  accountmocks.NewMockAccountService(ctrl),
		syncs:     syncingmocks.NewMockSyncRequester(ctrl),
		analytics: analyzingmocks.NewMockAnalyticsService(ctrl),
		insights:  insightingmocks.NewMockInsightService(ctrl),
		cron:      &fakeCronJob{},
		db:        &fakePinger{},
		auth:      authenticating.NewService(cfg),
	}

	f.handler = NewHandler(cfg, Services{
		Authenticator: f.auth,
		Accounts:      f.accounts,
		Syncs:         f.syncs,
		Analytics:     f.analytics,
		Insights:      f.insights,
		CronJobs:      handler.CronJobServices{"sync": f.cron},
		Database:      f.db,
	})

	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body string, roleID int) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if roleID != 0 {
		token, err := f.auth.GenerateToken(domain.Claims{UserID: 7, UserRoleID: roleID}, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthcheckAndMetricsArePublic(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/healthcheck", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	rec = f.do(t, http.MethodGet, "/metrics", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthcheck_DatabaseUnavailable(t *testing.T) {
	f := newAPIFixture(t)
	f.db.err = errors.New("connection refused")

	rec := f.do(t, http.MethodGet, "/healthcheck", "", 0)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), `"database":"unavailable"`)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/accounts", "", 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidToken, decodeError(t, rec).Code)
}

func TestListAccounts(t *testing.T) {
	f := newAPIFixture(t)

	f.accounts.EXPECT().List(gomock.Any(), 7).Return([]*domain.AccountResponse{
		{ID: "acc1", Name: "Loja Centro", CampaignCount: 4},
	}, nil)

	rec := f.do(t, http.MethodGet, "/v1/accounts", "", middleware.RoleClient)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"campaign_count":4`)
}

func TestConnectAccount(t *testing.T) {
	f := newAPIFixture(t)

	f.accounts.EXPECT().
		Connect(gomock.Any(), 7, domain.ConnectAccountRequest{Code: "codigo"}).
		Return(&domain.Account{ID: "acc1", ExternalID: "123", AccessToken: "v1:cifrado", IsActive: true}, nil)

	rec := f.do(t, http.MethodPost, "/v1/meta/callback", `{"code":"codigo"}`, middleware.RoleClient)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"acc1"`)
	assert.NotContains(t, rec.Body.String(), "cifrado")
}

func TestRequestSync(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.SyncRequest
	}{
		{name: "sem corpo usa o modo padrão", body: "", want: domain.SyncRequest{}},
		{name: "modo completo", body: `{"sync_type":"full"}`, want: domain.SyncRequest{Mode: domain.SyncModeFull}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)

			f.syncs.EXPECT().
				RequestSync(gomock.Any(), 7, "acc1", tt.want).
				Return(&domain.SyncAcknowledgement{AccountID: "acc1", Status: domain.SyncStatusInProgress}, nil)

			rec := f.do(t, http.MethodPost, "/v1/accounts/acc1/sync", tt.body, middleware.RoleClient)

			assert.Equal(t, http.StatusAccepted, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"in_progress"`)
		})
	}

	t.Run("conta de outro usuário", func(t *testing.T) {
		f := newAPIFixture(t)

		f.syncs.EXPECT().
			RequestSync(gomock.Any(), 7, "acc9", domain.SyncRequest{}).
			Return(nil, domain.NewError(domain.KindNotFound, "sync.request", domain.ErrAccountNotFound))

		rec := f.do(t, http.MethodPost, "/v1/accounts/acc9/sync", "", middleware.RoleClient)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrResourceNotFound, decodeError(t, rec).Code)
	})

	t.Run("credencial indecifrável", func(t *testing.T) {
		f := newAPIFixture(t)

		f.syncs.EXPECT().
			RequestSync(gomock.Any(), 7, "acc1", domain.SyncRequest{}).
			Return(nil, domain.NewError(domain.KindCredential, "sync.decrypt", domain.ErrMissingToken))

		rec := f.do(t, http.MethodPost, "/v1/accounts/acc1/sync", "", middleware.RoleClient)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrIntegrationToken, decodeError(t, rec).Code)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("repassa escopo e período", func(t *testing.T) {
		f := newAPIFixture(t)
		accountID := "acc1"

		f.analytics.EXPECT().
			GetDashboard(gomock.Any(), 7, domain.DashboardRequest{AccountID: &accountID, Period: domain.Period30d}).
			Return(&domain.Dashboard{Period: domain.Period30d}, nil)

		rec := f.do(t, http.MethodGet, "/v1/analytics/dashboard?period=30d&account_id=acc1", "", middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"period":"30d"`)
	})

	t.Run("período personalizado", func(t *testing.T) {
		f := newAPIFixture(t)
		start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

		f.analytics.EXPECT().
			GetDashboard(gomock.Any(), 7, domain.DashboardRequest{Period: domain.PeriodCustom, StartDate: &start, EndDate: &end}).
			Return(&domain.Dashboard{Period: domain.PeriodCustom}, nil)

		rec := f.do(t, http.MethodGet, "/v1/analytics/dashboard?period=custom&start_date=2024-05-01&end_date=2024-05-31", "", middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("data malformada", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/v1/analytics/dashboard?period=custom&start_date=01/05/2024", "", middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestSetDesiredCPA(t *testing.T) {
	t.Run("atualiza a meta", func(t *testing.T) {
		f := newAPIFixture(t)
		cpa := 45.0

		f.analytics.EXPECT().
			SetDesiredCPA(gomock.Any(), 7, "c1", domain.SetDesiredCPARequest{DesiredCPA: 45}).
			Return(&domain.Campaign{ID: "c1", DesiredCPA: &cpa}, nil)

		rec := f.do(t, http.MethodPost, "/v1/analytics/campaigns/c1/desired-cpa", `{"desired_cpa":45}`, middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"desired_cpa":45`)
	})

	t.Run("valor inválido devolve os campos rejeitados", func(t *testing.T) {
		f := newAPIFixture(t)

		f.analytics.EXPECT().
			SetDesiredCPA(gomock.Any(), 7, "c1", domain.SetDesiredCPARequest{DesiredCPA: -1}).
			DoAndReturn(func(_ context.Context, _ int, _ string, req domain.SetDesiredCPARequest) (*domain.Campaign, error) {
				return nil, validation.Struct("campaign.set_desired_cpa", &req)
			})

		rec := f.do(t, http.MethodPost, "/v1/analytics/campaigns/c1/desired-cpa", `{"desired_cpa":-1}`, middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidRequest, apiErr.Code)
		assert.NotNil(t, apiErr.Details)
	})

	t.Run("corpo inválido", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/v1/analytics/campaigns/c1/desired-cpa", `{"desired_cpa":`, middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAlerts(t *testing.T) {
	f := newAPIFixture(t)

	f.analytics.EXPECT().GetAlerts(gomock.Any(), 7).Return(&domain.AlertsResponse{
		Alerts:        []*domain.Alert{{CampaignID: "c1", Severity: domain.SeverityCritical}},
		Total:         1,
		CriticalCount: 1,
	}, nil)

	rec := f.do(t, http.MethodGet, "/v1/insights/alerts", "", middleware.RoleClient)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"critical_count":1`)
}

func TestGenerateInsights(t *testing.T) {
	t.Run("gerador não configurado", func(t *testing.T) {
		f := newAPIFixture(t)

		f.insights.EXPECT().
			GenerateInsights(gomock.Any(), gomock.Any()).
			Return(nil, domain.NewError(domain.KindNotConfigured, "insights.generate", domain.ErrNotConfigured))

		rec := f.do(t, http.MethodPost, "/v1/insights/generate", `{"metrics":{"avg_cpa":10}}`, middleware.RoleClient)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, apiErrors.ErrAINotConfigured, decodeError(t, rec).Code)
	})

	t.Run("falha do provedor", func(t *testing.T) {
		f := newAPIFixture(t)

		f.insights.EXPECT().
			GenerateInsights(gomock.Any(), gomock.Any()).
			Return(nil, domain.NewError(domain.KindGeneration, "insights.generate", context.DeadlineExceeded))

		rec := f.do(t, http.MethodPost, "/v1/insights/generate", `{"metrics":{"avg_cpa":10}}`, middleware.RoleClient)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, apiErrors.ErrAIGenerationFailed, decodeError(t, rec).Code)
	})
}

func TestInsightHistory(t *testing.T) {
	t.Run("repassa limite e tipo", func(t *testing.T) {
		f := newAPIFixture(t)

		f.insights.EXPECT().
			History(gomock.Any(), domain.InsightHistoryFilter{Limit: 5, Type: "general"}).
			Return([]*domain.Insight{{ID: "i1"}}, nil)

		rec := f.do(t, http.MethodGet, "/v1/insights/history?limit=5&type=general", "", middleware.RoleClient)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("limite não numérico", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/v1/insights/history?limit=abc", "", middleware.RoleClient)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCronJobs(t *testing.T) {
	t.Run("restrito a administradores", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/v1/cron/sync/run", "", middleware.RoleClient)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, f.cron.triggered)
	})

	t.Run("dispara o job informado", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/v1/cron/sync/run", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, f.cron.triggered)
	})

	t.Run("tipo desconhecido", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodPost, "/v1/cron/monthly/run", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/v1/cron/status", "", middleware.RoleAdmin)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sync"`)
	})
}

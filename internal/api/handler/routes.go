package handler

import (
	"net/http"

	"github.com/vfg2006/tracionar-api/infrastructure/metrics"
	"github.com/vfg2006/tracionar-api/internal/api/handler/router"
	"github.com/vfg2006/tracionar-api/internal/usecases/account"
	"github.com/vfg2006/tracionar-api/internal/usecases/analyzing"
	"github.com/vfg2006/tracionar-api/internal/usecases/insighting"
	"github.com/vfg2006/tracionar-api/internal/usecases/syncing"
	"github.com/vfg2006/tracionar-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Meta(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta/auth-url",
			Method:      http.MethodGet,
			Handler:     MetaAuthURL(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta/callback",
			Method:      http.MethodPost,
			Handler:     ConnectAccount(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Accounts(service account.AccountService, syncs syncing.SyncRequester) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     ListAccounts(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodDelete,
			Handler:     DisconnectAccount(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id/sync",
			Method:      http.MethodPost,
			Handler:     RequestSync(syncs),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id/sync-status",
			Method:      http.MethodGet,
			Handler:     AccountSyncStatus(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     AccountCampaigns(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Analytics(service analyzing.AnalyticsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics/dashboard",
			Method:      http.MethodGet,
			Handler:     Dashboard(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/critical-campaigns",
			Method:      http.MethodGet,
			Handler:     CriticalCampaigns(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/campaigns/:id/desired-cpa",
			Method:      http.MethodPost,
			Handler:     SetDesiredCPA(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/alerts",
			Method:      http.MethodGet,
			Handler:     Alerts(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Insights(service insighting.InsightService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/generate",
			Method:      http.MethodPost,
			Handler:     GenerateInsights(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/analyze-campaign",
			Method:      http.MethodPost,
			Handler:     AnalyzeCampaign(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/history",
			Method:      http.MethodGet,
			Handler:     InsightHistory(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/internal/api/handler"
	"github.com/vfg2006/tracionar-api/internal/api/handler/router"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/usecases/account"
	"github.com/vfg2006/tracionar-api/internal/usecases/analyzing"
	"github.com/vfg2006/tracionar-api/internal/usecases/authenticating"
	"github.com/vfg2006/tracionar-api/internal/usecases/insighting"
	"github.com/vfg2006/tracionar-api/internal/usecases/syncing"
	"github.com/vfg2006/tracionar-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Accounts      account.AccountService
	Syncs         syncing.SyncRequester
	Analytics     analyzing.AnalyticsService
	Insights      insighting.InsightService
	CronJobs      handler.CronJobServices
	Database      handler.Pinger
}

func NewHandler(config *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Meta(services.Accounts)...),
		router.WithRoutes(handler.Accounts(services.Accounts, services.Syncs)...),
		router.WithRoutes(handler.Analytics(services.Analytics)...),
		router.WithRoutes(handler.Insights(services.Insights)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.App.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(config *config.Config, services Services) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

const shutdownTimeout = 15 * time.Second

// Run serve até receber SIGINT/SIGTERM ou até ctx ser cancelado e então desliga com prazo
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("http: iniciando servidor")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("http: sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("http: contexto da aplicação cancelado")
	case err := <-serveErr:
		return fmt.Errorf("http: falha no servidor: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("http: encerramento gracioso iniciado")

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: falha no encerramento: %w", err)
	}

	logrus.Info("http: servidor encerrado")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

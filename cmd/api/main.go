package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/meta"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/openai"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/infrastructure/vault"
	"github.com/vfg2006/tracionar-api/internal/api"
	"github.com/vfg2006/tracionar-api/internal/api/handler"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/scheduler"
	"github.com/vfg2006/tracionar-api/internal/usecases/account"
	"github.com/vfg2006/tracionar-api/internal/usecases/analyzing"
	"github.com/vfg2006/tracionar-api/internal/usecases/authenticating"
	"github.com/vfg2006/tracionar-api/internal/usecases/insighting"
	"github.com/vfg2006/tracionar-api/internal/usecases/syncing"
	"github.com/vfg2006/tracionar-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	level := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	credentialVault, err := vault.New(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o cofre de credenciais")
	}

	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg.Meta))

	generator := openai.New(openai.NewClient(cfg.Insight))
	if !generator.Configured() {
		logrus.Warn("OPENAI_API_KEY ausente: geração de narrativas desabilitada, alertas seguem disponíveis")
	}

	orchestrator := syncing.NewOrchestrator(
		metaIntegrator,
		accountRepo,
		campaignRepo,
		adSetRepo,
		adRepo,
		metricRepo,
		syncRunRepo,
	)

	// Execuções desacopladas usam o contexto do processo e são aguardadas no desligamento
	executor := syncing.NewExecutor(ctx, orchestrator, accountRepo, credentialVault)

	authenticator := authenticating.NewService(cfg)
	accountService := account.NewService(accountRepo, campaignRepo, syncRunRepo, metaIntegrator, credentialVault, executor)
	analyticsService := analyzing.NewService(accountRepo, campaignRepo, metricRepo, analyzing.NewEvaluator(), generator)
	insightService := insighting.NewService(generator, insightRepo, insighting.NewCache(cfg.Insight.CacheTTL))

	accountSyncService := scheduler.NewAccountSyncService(accountRepo, executor, cfg)
	cacheSweepService := scheduler.NewCacheSweepService(insightService, cfg)

	if err := accountSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização das contas")
	}

	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a limpeza periódica do cache de insights")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Accounts:      accountService,
		Syncs:         executor,
		Analytics:     analyticsService,
		Insights:      insightService,
		Database:      pgConn,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeSync:       accountSyncService,
			handler.CronJobTypeCacheSweep: cacheSweepService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// cancela as sincronizações em andamento; cada uma registra seu SyncRun antes de sair
	cancel()
	executor.Wait()
	logrus.Info("Sincronizações em andamento finalizadas")
}

// chdirToSource permite encontrar o .env relativo ao pacote ao rodar com go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar para o diretório do binário")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

package syncing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/metrics"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var ErrSyncAborted = errors.New("sync aborted")

// Orchestrator percorre a hierarquia da conta e grava cada entidade pela chave natural.
// Falhas num ramo (campanha, conjunto) são registradas e o ramo contribui com zero registros;
// apenas falhas na busca de campanhas ou de credencial abortam a execução.
type Orchestrator struct {
	source    HierarchySource
	accounts  repository.AccountRepository
	campaigns repository.CampaignRepository
	adSets    repository.AdSetRepository
	ads       repository.AdRepository
	samples   repository.MetricRepository
	syncRuns  repository.SyncRunRepository
	now       func() time.Time
}

func NewOrchestrator(
	source HierarchySource,
	accounts repository.AccountRepository,
	campaigns repository.CampaignRepository,
	adSets repository.AdSetRepository,
	ads repository.AdRepository,
	samples repository.MetricRepository,
	syncRuns repository.SyncRunRepository,
) *Orchestrator {
	return &Orchestrator{
		source:    source,
		accounts:  accounts,
		campaigns: campaigns,
		adSets:    adSets,
		ads:       ads,
		samples:   samples,
		syncRuns:  syncRuns,
		now:       time.Now,
	}
}

// run acumula o estado de uma execução
type run struct {
	account *domain.Account
	token   string
	mode    domain.SyncMode
	records int
	logger  *logrus.Entry
}

// campanha persistida: ID interno e ID externo usado nas chamadas seguintes
type syncedCampaign struct {
	id         string
	externalID string
}

func (o *Orchestrator) Sync(ctx context.Context, account *domain.Account, accessToken string, mode domain.SyncMode) (*domain.SyncResult, error) {
	startedAt := o.now()

	r := &run{
		account: account,
		token:   accessToken,
		mode:    mode,
		logger: logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"external_id": account.ExternalID,
			"sync_type":   mode,
		}),
	}

	r.logger.Info("sync: iniciando sincronização")

	err := o.syncHierarchy(ctx, r)
	if err == nil {
		if updateErr := o.accounts.UpdateLastSync(ctx, account.ID, o.now()); updateErr != nil {
			err = fmt.Errorf("erro ao atualizar última sincronização: %w", updateErr)
		}
	}

	duration := o.now().Sub(startedAt)
	o.record(ctx, r, duration, err)

	if err != nil {
		r.logger.WithError(err).WithField("records_touched", r.records).Error("sync: sincronização falhou")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"records_touched": r.records,
		"duration":        duration.String(),
	}).Info("sync: sincronização concluída")

	return &domain.SyncResult{RecordsTouched: r.records, Duration: duration}, nil
}

func (o *Orchestrator) syncHierarchy(ctx context.Context, r *run) error {
	campaigns, err := o.source.GetCampaigns(ctx, r.token, r.account.ExternalID)
	if err != nil {
		return fmt.Errorf("%w: erro ao buscar campanhas: %w", ErrSyncAborted, err)
	}

	r.logger.WithField("campaigns", len(campaigns)).Info("sync: campanhas obtidas")

	synced := make([]syncedCampaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		campaign.AccountID = r.account.ID

		id, err := o.campaigns.Upsert(ctx, campaign)
		if err != nil {
			o.branchFailed(r, "campaign", campaign.ExternalID, err)
			continue
		}
		r.records++
		synced = append(synced, syncedCampaign{id: id, externalID: campaign.ExternalID})

		if err := o.syncAdSets(ctx, r, id, campaign.ExternalID); err != nil {
			return err
		}
	}

	for _, campaign := range synced {
		if err := o.syncMetrics(ctx, r, campaign); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) syncAdSets(ctx context.Context, r *run, campaignID, campaignExternalID string) error {
	adSets, err := o.source.GetAdSets(ctx, r.token, campaignExternalID)
	if err != nil {
		return o.branchFailed(r, "adset", campaignExternalID, err)
	}

	for _, adSet := range adSets {
		adSet.CampaignID = campaignID

		id, err := o.adSets.Upsert(ctx, adSet)
		if err != nil {
			o.branchFailed(r, "adset", adSet.ExternalID, err)
			continue
		}
		r.records++

		if err := o.syncAds(ctx, r, id, adSet.ExternalID); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) syncAds(ctx context.Context, r *run, adSetID, adSetExternalID string) error {
	ads, err := o.source.GetAds(ctx, r.token, adSetExternalID)
	if err != nil {
		return o.branchFailed(r, "ad", adSetExternalID, err)
	}

	for _, ad := range ads {
		ad.AdSetID = adSetID

		if err := o.ads.Upsert(ctx, ad); err != nil {
			o.branchFailed(r, "ad", ad.ExternalID, err)
			continue
		}
		r.records++
	}

	return nil
}

// syncMetrics grava as amostras diárias; reenvios do mesmo dia sobrescrevem os valores
func (o *Orchestrator) syncMetrics(ctx context.Context, r *run, campaign syncedCampaign) error {
	samples, err := o.source.GetCampaignMetrics(ctx, r.token, campaign.externalID, r.mode)
	if err != nil {
		return o.branchFailed(r, "metrics", campaign.externalID, err)
	}

	saved := 0
	for _, sample := range samples {
		sample.CampaignID = campaign.id

		if err := o.samples.Upsert(ctx, sample); err != nil {
			o.branchFailed(r, "metrics", campaign.externalID, err)
			continue
		}
		saved++
	}

	r.logger.WithFields(logrus.Fields{
		"campaign_external_id": campaign.externalID,
		"samples":              saved,
	}).Debug("sync: métricas gravadas")

	return nil
}

// branchFailed registra a falha de um ramo. Retorna erro apenas quando a execução
// inteira precisa ser abortada: credencial inválida ou contexto cancelado.
func (o *Orchestrator) branchFailed(r *run, level, externalID string, err error) error {
	metrics.SyncBranchFailures.WithLabelValues(level).Inc()

	r.logger.WithError(err).WithFields(logrus.Fields{
		"level":              level,
		"entity_external_id": externalID,
	}).Warn("sync: falha em ramo da hierarquia, seguindo para o próximo")

	if domain.IsKind(err, domain.KindCredential) {
		return fmt.Errorf("%w: credencial rejeitada em %s: %w", ErrSyncAborted, level, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrSyncAborted, err)
	}

	return nil
}

// record grava exatamente um SyncRun por execução
func (o *Orchestrator) record(ctx context.Context, r *run, duration time.Duration, runErr error) {
	syncRun := &domain.SyncRun{
		ID:             uuid.NewString(),
		AccountID:      r.account.ID,
		Mode:           r.mode,
		Outcome:        domain.SyncOutcomeSuccess,
		RecordsTouched: r.records,
		Duration:       duration.Milliseconds(),
		CreatedAt:      o.now(),
	}

	if runErr != nil {
		message := runErr.Error()
		syncRun.Outcome = domain.SyncOutcomeError
		syncRun.ErrorMessage = &message
	}

	metrics.ObserveSync(string(r.mode), string(syncRun.Outcome), r.records, duration)

	// O registro precisa sobreviver ao cancelamento da execução
	if err := o.syncRuns.Create(context.WithoutCancel(ctx), syncRun); err != nil {
		r.logger.WithError(err).Error("sync: erro ao salvar registro de sincronização")
	}
}

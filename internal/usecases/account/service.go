package account

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/infrastructure/vault"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

const (
	oauthStatePrefix = "tracionar_oauth_"
	recentSyncRuns   = 5
)

type AccountService interface {
	AuthURL() (*domain.AuthURLResponse, error)
	Connect(ctx context.Context, userID int, req domain.ConnectAccountRequest) (*domain.Account, error)
	List(ctx context.Context, userID int) ([]*domain.AccountResponse, error)
	Disconnect(ctx context.Context, userID int, accountID string) error
	SyncStatus(ctx context.Context, userID int, accountID string) (*domain.SyncStatus, error)
	Campaigns(ctx context.Context, userID int, accountID string) ([]*domain.CampaignSummary, error)
}

type Service struct {
	accounts  repository.AccountRepository
	campaigns repository.CampaignRepository
	syncRuns  repository.SyncRunRepository
	meta      MetaConnector
	vault     vault.Vault
	tracker   SyncTracker
}

func NewService(
	accounts repository.AccountRepository,
	campaigns repository.CampaignRepository,
	syncRuns repository.SyncRunRepository,
	meta MetaConnector,
	v vault.Vault,
	tracker SyncTracker,
) AccountService {
	return &Service{
		accounts:  accounts,
		campaigns: campaigns,
		syncRuns:  syncRuns,
		meta:      meta,
		vault:     v,
		tracker:   tracker,
	}
}

func (s *Service) AuthURL() (*domain.AuthURLResponse, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, ErrGenerateState
	}

	state := oauthStatePrefix + id

	return &domain.AuthURLResponse{
		AuthURL: s.meta.AuthURL(state),
		State:   state,
	}, nil
}

// Connect troca o código OAuth, conecta a primeira conta de anúncios do usuário e guarda o token cifrado.
// Uma conta já conhecida é atualizada e reativada.
func (s *Service) Connect(ctx context.Context, userID int, req domain.ConnectAccountRequest) (*domain.Account, error) {
	if err := validation.Struct("account.connect", &req); err != nil {
		return nil, err
	}

	token, expiry, err := s.meta.ExchangeCode(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("account: erro ao trocar o código OAuth")
		return nil, domain.WrapKind(domain.KindExternalAPI, "account.connect", err)
	}

	adAccounts, err := s.meta.GetAdAccounts(ctx, token)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("account: erro ao listar contas de anúncio")
		return nil, domain.WrapKind(domain.KindExternalAPI, "account.connect", err)
	}

	if len(adAccounts) == 0 {
		return nil, domain.NewError(domain.KindNotFound, "account.connect", ErrNoAdAccounts)
	}

	blob, err := s.vault.Encrypt(token)
	if err != nil {
		logrus.WithError(err).Error("account: erro ao cifrar o token de acesso")
		return nil, domain.NewError(domain.KindCredential, "account.connect", ErrEncryptToken)
	}

	first := adAccounts[0]
	saved, err := s.accounts.Upsert(ctx, &domain.Account{
		UserID:      userID,
		ExternalID:  first.ExternalID,
		Name:        first.Name,
		AccessToken: blob,
		TokenExpiry: expiry,
	})
	if err != nil {
		logrus.WithError(err).WithField("external_id", first.ExternalID).Error("account: erro ao salvar conta")
		return nil, domain.WrapKind(domain.KindPersistence, "account.connect", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"account_id":  saved.ID,
		"external_id": saved.ExternalID,
	}).Info("account: conta de anúncio conectada")

	return saved, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]*domain.AccountResponse, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "account.list", err)
	}
	return accounts, nil
}

// Disconnect desativa a conta sem apagar o histórico sincronizado
func (s *Service) Disconnect(ctx context.Context, userID int, accountID string) error {
	if accountID == "" {
		return domain.NewError(domain.KindValidation, "account.disconnect", ErrAccountIDRequired)
	}

	if err := s.accounts.Deactivate(ctx, userID, accountID); err != nil {
		return domain.WrapKind(domain.KindPersistence, "account.disconnect", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"account_id": accountID,
	}).Info("account: conta de anúncio desconectada")

	return nil
}

func (s *Service) SyncStatus(ctx context.Context, userID int, accountID string) (*domain.SyncStatus, error) {
	account, err := s.ownedAccount(ctx, userID, accountID, "account.sync_status")
	if err != nil {
		return nil, err
	}

	runs, err := s.syncRuns.ListRecent(ctx, account.ID, recentSyncRuns)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "account.sync_status", err)
	}

	return &domain.SyncStatus{
		AccountID: account.ID,
		LastSync:  account.LastSync,
		Running:   s.tracker.IsRunning(account.ID),
		Recent:    runs,
	}, nil
}

func (s *Service) Campaigns(ctx context.Context, userID int, accountID string) ([]*domain.CampaignSummary, error) {
	account, err := s.ownedAccount(ctx, userID, accountID, "account.campaigns")
	if err != nil {
		return nil, err
	}

	summaries, err := s.campaigns.ListSummaries(ctx, account.ID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "account.campaigns", err)
	}

	return summaries, nil
}

func (s *Service) ownedAccount(ctx context.Context, userID int, accountID, op string) (*domain.Account, error) {
	if accountID == "" {
		return nil, domain.NewError(domain.KindValidation, op, ErrAccountIDRequired)
	}

	account, err := s.accounts.GetByIDForUser(ctx, userID, accountID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, op, err)
	}

	if account == nil {
		return nil, domain.NewError(domain.KindNotFound, op, domain.ErrAccountNotFound)
	}

	return account, nil
}

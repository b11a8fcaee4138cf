package syncing

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/infrastructure/vault"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

// Executor dispara sincronizações desacopladas da requisição que as pediu.
// O resultado só é observável pelo histórico de SyncRun e pela última sincronização da conta.
type Executor struct {
	syncer   Syncer
	accounts repository.AccountRepository
	vault    vault.Vault

	// contexto de vida do processo; cancelado no shutdown
	baseCtx context.Context

	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

func NewExecutor(
	baseCtx context.Context,
	syncer Syncer,
	accounts repository.AccountRepository,
	v vault.Vault,
) *Executor {
	return &Executor{
		syncer:   syncer,
		accounts: accounts,
		vault:    v,
		baseCtx:  baseCtx,
		running:  make(map[string]struct{}),
	}
}

// RequestSync valida a conta do usuário e entrega a execução ao executor sem aguardá-la
func (e *Executor) RequestSync(ctx context.Context, userID int, accountID string, req domain.SyncRequest) (*domain.SyncAcknowledgement, error) {
	if err := validation.Struct("sync.request", &req); err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.SyncModeIncremental
	}

	account, err := e.accounts.GetByIDForUser(ctx, userID, accountID)
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, "sync.request", err)
	}

	if account == nil {
		return nil, domain.NewError(domain.KindNotFound, "sync.request", domain.ErrAccountNotFound)
	}

	token, err := e.decrypt(account)
	if err != nil {
		return nil, err
	}

	ack := &domain.SyncAcknowledgement{
		AccountID: account.ID,
		Mode:      mode,
	}

	if !e.acquire(account.ID) {
		ack.Status = domain.SyncStatusAlreadyRunning
		ack.Message = "Sincronização já em andamento para esta conta"
		return ack, nil
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.release(account.ID)

		// erros já foram registrados no SyncRun pelo orquestrador
		_, _ = e.syncer.Sync(e.baseCtx, account, token, mode)
	}()

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"user_id":    userID,
		"sync_type":  mode,
	}).Info("sync: sincronização iniciada em segundo plano")

	ack.Status = domain.SyncStatusInProgress
	ack.Message = "Sincronização iniciada"
	return ack, nil
}

// SyncNow executa a sincronização de forma síncrona, usada pelo agendador.
// Retorna false quando já existe uma execução em andamento para a conta.
func (e *Executor) SyncNow(ctx context.Context, account *domain.Account, mode domain.SyncMode) (bool, error) {
	token, err := e.decrypt(account)
	if err != nil {
		return true, err
	}

	if !e.acquire(account.ID) {
		return false, nil
	}
	defer e.release(account.ID)

	_, err = e.syncer.Sync(ctx, account, token, mode)
	return true, err
}

// IsRunning indica se há uma sincronização em andamento para a conta
func (e *Executor) IsRunning(accountID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.running[accountID]
	return ok
}

// Wait aguarda todas as execuções desacopladas terminarem
func (e *Executor) Wait() {
	e.wg.Wait()
}

func (e *Executor) decrypt(account *domain.Account) (string, error) {
	if account.AccessToken == "" {
		return "", domain.NewError(domain.KindCredential, "sync.decrypt", domain.ErrMissingToken)
	}

	token, err := e.vault.Decrypt(account.AccessToken)
	if err != nil {
		return "", domain.NewError(domain.KindCredential, "sync.decrypt", err)
	}

	return token, nil
}

func (e *Executor) acquire(accountID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.running[accountID]; ok {
		return false
	}
	e.running[accountID] = struct{}{}
	return true
}

func (e *Executor) release(accountID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.running, accountID)
}

package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vfg2006/tracionar-api/infrastructure/repository/mocks"
	"github.com/vfg2006/tracionar-api/infrastructure/vault"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/usecases/account/mocks"
)

type serviceFixture struct {
	accounts  *repomocks.MockAccountRepository
	campaigns *repomocks.MockCampaignRepository
	syncRuns  *repomocks.MockSyncRunRepository
	meta      *mocks.MockMetaConnector
	tracker   *mocks.MockSyncTracker
	vault     *vault.AESVault
	svc       AccountService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)

	v, err := vault.New("segredo-de-teste")
	require.NoError(t, err)

	f := &serviceFixture{
		accounts:  repomocks.NewMockAccountRepository(ctrl),
		campaigns: repomocks.NewMockCampaignRepository(ctrl),
		syncRuns:  repomocks.NewMockSyncRunRepository(ctrl),
		meta:      mocks.NewMockMetaConnector(ctrl),
		tracker:   mocks.NewMockSyncTracker(ctrl),
		vault:     v,
	}
	f.svc = NewService(f.accounts, f.campaigns, f.syncRuns, f.meta, f.vault, f.tracker)

	return f
}

func TestService_AuthURL(t *testing.T) {
	f := newServiceFixture(t)

	f.meta.EXPECT().
		AuthURL(gomock.Any()).
		DoAndReturn(func(state string) string {
			return "https://www.facebook.com/v18.0/dialog/oauth?state=" + state
		})

	resp, err := f.svc.AuthURL()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.State, "tracionar_oauth_"))
	assert.Len(t, resp.State, len("tracionar_oauth_")+12)
	assert.True(t, strings.HasSuffix(resp.AuthURL, resp.State))
}

func TestService_Connect(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	expiry := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	f.meta.EXPECT().ExchangeCode(ctx, "codigo-oauth").Return("EAAB-token", &expiry, nil)
	f.meta.EXPECT().GetAdAccounts(ctx, "EAAB-token").Return([]*domain.Account{
		{ExternalID: "1234567890", Name: "Loja Centro"},
		{ExternalID: "999", Name: "Outra"},
	}, nil)

	var stored *domain.Account
	f.accounts.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *domain.Account) (*domain.Account, error) {
			stored = acc
			saved := *acc
			saved.ID = "acc1"
			saved.IsActive = true
			return &saved, nil
		})

	account, err := f.svc.Connect(ctx, 7, domain.ConnectAccountRequest{Code: " codigo-oauth "})
	require.NoError(t, err)

	assert.Equal(t, "acc1", account.ID)
	assert.True(t, account.IsActive)

	require.NotNil(t, stored)
	assert.Equal(t, 7, stored.UserID)
	assert.Equal(t, "1234567890", stored.ExternalID)
	assert.Equal(t, "Loja Centro", stored.Name)
	assert.Equal(t, &expiry, stored.TokenExpiry)
	assert.NotEqual(t, "EAAB-token", stored.AccessToken)
	assert.True(t, vault.IsEncrypted(stored.AccessToken))

	plaintext, err := f.vault.Decrypt(stored.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "EAAB-token", plaintext)
}

func TestService_Connect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		setup   func(f *serviceFixture)
		kind    domain.Kind
		wantErr error
	}{
		{
			name:  "código ausente",
			code:  "",
			setup: func(f *serviceFixture) {},
			kind:  domain.KindValidation,
		},
		{
			name: "falha na troca do código",
			code: "abc",
			setup: func(f *serviceFixture) {
				f.meta.EXPECT().ExchangeCode(gomock.Any(), "abc").Return("", nil, errors.New("invalid verification code"))
			},
			kind: domain.KindExternalAPI,
		},
		{
			name: "token rejeitado pela Graph API",
			code: "abc",
			setup: func(f *serviceFixture) {
				f.meta.EXPECT().ExchangeCode(gomock.Any(), "abc").Return("EAAB", nil, nil)
				f.meta.EXPECT().
					GetAdAccounts(gomock.Any(), "EAAB").
					Return(nil, domain.NewError(domain.KindCredential, "meta", domain.ErrTokenExpired))
			},
			kind:    domain.KindCredential,
			wantErr: domain.ErrTokenExpired,
		},
		{
			name: "usuário sem contas de anúncio",
			code: "abc",
			setup: func(f *serviceFixture) {
				f.meta.EXPECT().ExchangeCode(gomock.Any(), "abc").Return("EAAB", nil, nil)
				f.meta.EXPECT().GetAdAccounts(gomock.Any(), "EAAB").Return([]*domain.Account{}, nil)
			},
			kind:    domain.KindNotFound,
			wantErr: ErrNoAdAccounts,
		},
		{
			name: "falha ao salvar",
			code: "abc",
			setup: func(f *serviceFixture) {
				f.meta.EXPECT().ExchangeCode(gomock.Any(), "abc").Return("EAAB", nil, nil)
				f.meta.EXPECT().GetAdAccounts(gomock.Any(), "EAAB").Return([]*domain.Account{{ExternalID: "1"}}, nil)
				f.accounts.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock"))
			},
			kind: domain.KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.setup(f)

			_, err := f.svc.Connect(context.Background(), 7, domain.ConnectAccountRequest{Code: tt.code})

			require.Error(t, err)
			assert.True(t, domain.IsKind(err, tt.kind))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.accounts.EXPECT().ListByUser(ctx, 7).Return([]*domain.AccountResponse{
		{ID: "acc1", Name: "Loja Centro", CampaignCount: 4},
	}, nil)

	accounts, err := f.svc.List(ctx, 7)
	require.NoError(t, err)

	require.Len(t, accounts, 1)
	assert.Equal(t, 4, accounts[0].CampaignCount)
}

func TestService_Disconnect(t *testing.T) {
	t.Run("desativa a conta", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()

		f.accounts.EXPECT().Deactivate(ctx, 7, "acc1").Return(nil)

		assert.NoError(t, f.svc.Disconnect(ctx, 7, "acc1"))
	})

	t.Run("conta inexistente mantém o tipo not found", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()

		f.accounts.EXPECT().
			Deactivate(ctx, 7, "acc9").
			Return(domain.NewError(domain.KindNotFound, "account.deactivate", domain.ErrAccountNotFound))

		err := f.svc.Disconnect(ctx, 7, "acc9")

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
		assert.False(t, domain.IsKind(err, domain.KindPersistence))
	})

	t.Run("id obrigatório", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.svc.Disconnect(context.Background(), 7, "")

		assert.ErrorIs(t, err, ErrAccountIDRequired)
	})
}

func TestService_SyncStatus(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	lastSync := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	runs := []*domain.SyncRun{
		{ID: "r2", Outcome: domain.SyncOutcomeSuccess},
		{ID: "r1", Outcome: domain.SyncOutcomeError},
	}

	f.accounts.EXPECT().GetByIDForUser(ctx, 7, "acc1").Return(&domain.Account{ID: "acc1", LastSync: &lastSync}, nil)
	f.syncRuns.EXPECT().ListRecent(ctx, "acc1", uint64(5)).Return(runs, nil)
	f.tracker.EXPECT().IsRunning("acc1").Return(true)

	status, err := f.svc.SyncStatus(ctx, 7, "acc1")
	require.NoError(t, err)

	assert.Equal(t, "acc1", status.AccountID)
	assert.Equal(t, &lastSync, status.LastSync)
	assert.True(t, status.Running)
	assert.Equal(t, runs, status.Recent)
}

func TestService_SyncStatus_AccountNotFound(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.accounts.EXPECT().GetByIDForUser(ctx, 7, "acc9").Return(nil, nil)

	_, err := f.svc.SyncStatus(ctx, 7, "acc9")

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_Campaigns(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	summaries := []*domain.CampaignSummary{
		{Campaign: domain.Campaign{ID: "c1", Name: "Vendas"}, AdSetCount: 3},
	}

	f.accounts.EXPECT().GetByIDForUser(ctx, 7, "acc1").Return(&domain.Account{ID: "acc1"}, nil)
	f.campaigns.EXPECT().ListSummaries(ctx, "acc1").Return(summaries, nil)

	got, err := f.svc.Campaigns(ctx, 7, "acc1")
	require.NoError(t, err)
	assert.Equal(t, summaries, got)
}

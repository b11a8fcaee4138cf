package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

func TestMetaIntegrator_GetCampaignMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, client)

	client.EXPECT().
		GetInsights(gomock.Any(), "token", "c1", metaclient.InsightsQuery{DatePreset: "last_7d", Level: metadomain.LevelCampaign}).
		Return([]metadomain.Insight{
			{Spend: "10", DateStart: "2024-01-01"},
			{Spend: "não-numérico", DateStart: "2024-01-02"},
			{Spend: "20", DateStart: "2024-01-03"},
		}, nil)

	samples, err := integrator.GetCampaignMetrics(context.Background(), "token", "c1", domain.SyncModeIncremental)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 10.0, samples[0].Spend)
	assert.Equal(t, 20.0, samples[1].Spend)
}

func TestMetaIntegrator_GetAdSets_ClassifiesTargeting(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, client)

	status := "ACTIVE"
	client.EXPECT().
		GetAdSets(gomock.Any(), "token", "c1").
		Return([]metadomain.AdSet{
			{ID: "s1", Name: "Conjunto", Status: &status},
			{ID: "s2", Name: "Sem status", Targeting: &metadomain.Targeting{}},
		}, nil)

	adSets, err := integrator.GetAdSets(context.Background(), "token", "c1")
	require.NoError(t, err)
	require.Len(t, adSets, 2)
	assert.Equal(t, domain.TargetingUnknown, adSets[0].TargetingType)
	assert.Equal(t, &status, adSets[0].Status)
	assert.Equal(t, domain.TargetingDemographic, adSets[1].TargetingType)
	assert.Nil(t, adSets[1].Status)
}

func TestMetaIntegrator_PropagatesCredentialErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, client)

	credentialErr := domain.NewError(domain.KindCredential, "meta.campaigns", domain.ErrTokenExpired)
	client.EXPECT().GetCampaigns(gomock.Any(), "token", "123").Return(nil, credentialErr)

	_, err := integrator.GetCampaigns(context.Background(), "token", "123")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindCredential))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestMetaIntegrator_ExchangeCode(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setup      func(client *mocks.MockClient)
		wantToken  string
		wantExpiry *time.Time
		wantErr    bool
	}{
		{
			name: "troca pelo token de longa duração",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ExchangeCodeForToken(gomock.Any(), "code").Return(&metadomain.TokenResponse{AccessToken: "short", ExpiresIn: 3600}, nil)
				client.EXPECT().GetLongLivedToken(gomock.Any(), "short").Return(&metadomain.TokenResponse{AccessToken: "long", ExpiresIn: 86400}, nil)
			},
			wantToken: "long",
			wantExpiry: func() *time.Time {
				e := now.Add(24 * time.Hour)
				return &e
			}(),
		},
		{
			name: "mantém o token curto quando a troca falha",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ExchangeCodeForToken(gomock.Any(), "code").Return(&metadomain.TokenResponse{AccessToken: "short"}, nil)
				client.EXPECT().GetLongLivedToken(gomock.Any(), "short").Return(nil, errors.New("boom"))
			},
			wantToken: "short",
		},
		{
			name: "falha na troca do código",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ExchangeCodeForToken(gomock.Any(), "code").Return(nil, domain.NewError(domain.KindCredential, "meta.oauth_code", errors.New("invalid code")))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			integrator := New(&config.Config{}, client)
			integrator.now = func() time.Time { return now }

			tt.setup(client)

			token, expiry, err := integrator.ExchangeCode(context.Background(), "code")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantExpiry, expiry)
		})
	}
}

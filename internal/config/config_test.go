package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_normalize(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "monta a URL versionada da Graph API",
			cfg:  Config{Meta: Meta{BaseURL: "https://graph.facebook.com/", Version: "v18.0"}},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "https://graph.facebook.com/v18.0", cfg.Meta.URL)
			},
		},
		{
			name: "limita o tamanho de página ao máximo aceito",
			cfg:  Config{Meta: Meta{PageSize: 5000}},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, MaxMetaPageSize, cfg.Meta.PageSize)
			},
		},
		{
			name: "mantém tamanho de página válido",
			cfg:  Config{Meta: Meta{PageSize: 100}},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 100, cfg.Meta.PageSize)
			},
		},
		{
			name: "aplica padrões para valores zerados",
			cfg:  Config{},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, MaxMetaPageSize, cfg.Meta.PageSize)
				assert.Equal(t, 1000, cfg.Meta.InsightsPageSize)
				assert.Equal(t, 1, cfg.Sync.MaxConcurrentJobs)
				assert.Equal(t, time.Hour, cfg.Insight.CacheTTL)
			},
		},
		{
			name: "monta o DSN do postgres",
			cfg: Config{Database: Database{
				Driver:   "postgres",
				User:     "tracionar",
				Password: "segredo",
				URL:      "db:5432/tracionar?sslmode=disable",
			}},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "postgres://tracionar:segredo@db:5432/tracionar?sslmode=disable", cfg.Database.DSN)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.normalize()
			tt.check(t, cfg)
		})
	}
}

func TestConfig_validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "segredo de sessão ausente", cfg: Config{SecretKey: "x"}, wantErr: "AUTH_SECRET"},
		{name: "segredo do cofre ausente", cfg: Config{Auth: Auth{Secret: "x"}}, wantErr: "SECRET_KEY"},
		{name: "chave da OpenAI é opcional", cfg: Config{Auth: Auth{Secret: "x"}, SecretKey: "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestInsight_Configured(t *testing.T) {
	assert.False(t, Insight{}.Configured())
	assert.False(t, Insight{APIKey: "   "}.Configured())
	assert.True(t, Insight{APIKey: "sk-test"}.Configured())
}

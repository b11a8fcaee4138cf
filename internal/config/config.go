package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Limite máximo de itens por página aceito pela Graph API nas listagens de entidades
const MaxMetaPageSize = 500

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Meta      Meta     `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	Sync      Sync     `mapstructure:",squash"`
	Insight   Insight  `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL           string        `mapstructure:"meta_base_url"`
	URL               string        `mapstructure:"meta_url"`
	Version           string        `mapstructure:"meta_version"`
	AppID             string        `mapstructure:"meta_app_id"`
	AppSecret         string        `mapstructure:"meta_app_secret"`
	RedirectURI       string        `mapstructure:"meta_redirect_uri"`
	PageSize          int           `mapstructure:"meta_page_size"`
	InsightsPageSize  int           `mapstructure:"meta_insights_page_size"`
	RequestsPerSecond float64       `mapstructure:"meta_requests_per_second"`
	Burst             int           `mapstructure:"meta_burst"`
	Timeout           time.Duration `mapstructure:"meta_timeout"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Sync agrupa as configurações do agendador de sincronização incremental
type Sync struct {
	CronSchedule        string `mapstructure:"sync_cron"`
	Enabled             bool   `mapstructure:"sync_enabled"`
	MaxConcurrentJobs   int    `mapstructure:"sync_max_concurrent_jobs"`
	RequestDelaySeconds int    `mapstructure:"sync_request_delay_seconds"`
}

// Insight agrupa as configurações do gerador de narrativas e do cache
type Insight struct {
	APIKey         string        `mapstructure:"openai_api_key"`
	Model          string        `mapstructure:"openai_model"`
	BaseURL        string        `mapstructure:"openai_base_url"`
	Timeout        time.Duration `mapstructure:"openai_timeout"`
	CacheTTL       time.Duration `mapstructure:"insight_cache_ttl"`
	CacheSweepCron string        `mapstructure:"insight_cache_sweep_cron"`
}

// Configured indica se existe uma chave de API para o gerador de narrativas
func (i Insight) Configured() bool {
	return strings.TrimSpace(i.APIKey) != ""
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/tracionar?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v18.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:3000/auth/facebook/callback")
	viper.SetDefault("META_PAGE_SIZE", MaxMetaPageSize)
	viper.SetDefault("META_INSIGHTS_PAGE_SIZE", 1000)
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_BURST", 10)
	viper.SetDefault("META_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("SECRET_KEY", "")

	// Sincronização incremental periódica das contas ativas
	viper.SetDefault("SYNC_CRON", "0 */6 * * *")
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("SYNC_REQUEST_DELAY_SECONDS", 2)

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_TIMEOUT", "60s")
	viper.SetDefault("INSIGHT_CACHE_TTL", "1h")
	viper.SetDefault("INSIGHT_CACHE_SWEEP_CRON", "*/15 * * * *")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("config: usando o ambiente carregado pelo godotenv (viper não leu o .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.normalize()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) normalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(c.Meta.BaseURL, "/"), c.Meta.Version)

	if c.Meta.PageSize <= 0 || c.Meta.PageSize > MaxMetaPageSize {
		c.Meta.PageSize = MaxMetaPageSize
	}

	if c.Meta.InsightsPageSize <= 0 {
		c.Meta.InsightsPageSize = 1000
	}

	if c.Sync.MaxConcurrentJobs <= 0 {
		c.Sync.MaxConcurrentJobs = 1
	}

	if c.Insight.CacheTTL <= 0 {
		c.Insight.CacheTTL = time.Hour
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

func (c *Config) validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("config: AUTH_SECRET is required")
	}

	if c.SecretKey == "" {
		return fmt.Errorf("config: SECRET_KEY is required")
	}

	return nil
}

// Carrega o arquivo .env a partir do diretório atual ou de diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: não foi possível resolver o diretório de trabalho: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env carregado de ", location)
			return
		}
	}

	logrus.Debug("config: nenhum .env encontrado, usando o ambiente do processo")
}

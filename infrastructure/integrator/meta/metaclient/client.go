package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/infrastructure/metrics"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, accessToken, campaignID string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, accessToken, adSetID string) ([]metadomain.Ad, error)
	GetInsights(ctx context.Context, accessToken, objectID string, query InsightsQuery) ([]metadomain.Insight, error)
	GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error)
	ExchangeCodeForToken(ctx context.Context, code string) (*metadomain.TokenResponse, error)
	GetLongLivedToken(ctx context.Context, shortLivedToken string) (*metadomain.TokenResponse, error)
	AuthURL(state string) string
}

type MetaClient struct {
	cfg        config.Meta
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg config.Meta) *MetaClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Parâmetros que nunca podem aparecer em logs ou mensagens de erro
var secretParams = []string{"access_token", "client_secret", "code", "fb_exchange_token"}

// redactURL mascara os parâmetros sensíveis de uma URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[url inválida]"
	}

	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}

	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// withoutToken remove o access_token que a Graph API repete nos links de paginação
func withoutToken(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if !q.Has("access_token") {
		return raw
	}
	q.Del("access_token")
	u.RawQuery = q.Encode()
	return u.String()
}

// get executa uma chamada GET respeitando o limitador de requisições.
// O token vai no cabeçalho Authorization, nunca na URL.
func (c *MetaClient) get(ctx context.Context, edge, requestURL, accessToken string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewError(domain.KindExternalAPI, "meta."+edge, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, domain.NewError(domain.KindExternalAPI, "meta."+edge, fmt.Errorf("build request: %w", err))
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactURL(urlErr.URL)
		}

		metrics.ObserveMetaRequest(edge, "error", time.Since(start))
		logrus.WithFields(logrus.Fields{
			"edge":  edge,
			"error": err.Error(),
		}).Error("meta: falha na requisição")
		return nil, domain.NewError(domain.KindExternalAPI, "meta."+edge, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	body, err := handleResponse(edge, resp)
	if err != nil {
		metrics.ObserveMetaRequest(edge, "error", time.Since(start))
		return nil, err
	}

	metrics.ObserveMetaRequest(edge, "success", time.Since(start))
	return body, nil
}

// fetchAll percorre todas as páginas de uma edge seguindo paging.next
func fetchAll[T any](ctx context.Context, c *MetaClient, edge, accessToken, path string, params url.Values) ([]T, error) {
	if accessToken == "" {
		return nil, domain.NewError(domain.KindCredential, "meta."+edge, domain.ErrMissingToken)
	}

	next := fmt.Sprintf("%s/%s?%s", c.cfg.URL, path, params.Encode())

	items := make([]T, 0)
	visited := make(map[string]struct{})
	pages := 0

	for next != "" {
		if _, ok := visited[next]; ok {
			break
		}
		visited[next] = struct{}{}

		body, err := c.get(ctx, edge, next, accessToken)
		if err != nil {
			return nil, err
		}

		var page metadomain.Response[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, domain.NewError(domain.KindExternalAPI, "meta."+edge, fmt.Errorf("decode response: %w", err))
		}

		items = append(items, page.Data...)
		next = withoutToken(page.Paging.Next)
		pages++
	}

	logrus.WithFields(logrus.Fields{
		"edge":  edge,
		"path":  path,
		"pages": pages,
		"items": len(items),
	}).Debug("meta: edge consultado")

	return items, nil
}

func (c *MetaClient) pageSize() string {
	size := c.cfg.PageSize
	if size <= 0 || size > config.MaxMetaPageSize {
		size = config.MaxMetaPageSize
	}
	return fmt.Sprint(size)
}

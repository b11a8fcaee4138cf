package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var oauthScopes = []string{"ads_read", "ads_management", "business_management", "read_insights"}

// AuthURL monta a URL do diálogo OAuth do Facebook
func (c *MetaClient) AuthURL(state string) string {
	params := url.Values{}
	params.Add("client_id", c.cfg.AppID)
	params.Add("redirect_uri", c.cfg.RedirectURI)
	params.Add("scope", strings.Join(oauthScopes, ","))
	params.Add("response_type", "code")
	params.Add("state", state)

	return fmt.Sprintf("https://www.facebook.com/%s/dialog/oauth?%s", c.cfg.Version, params.Encode())
}

// ExchangeCodeForToken troca o código do callback OAuth por um token de acesso
func (c *MetaClient) ExchangeCodeForToken(ctx context.Context, code string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, domain.NewError(domain.KindValidation, "meta.exchange_code", fmt.Errorf("authorization code is empty"))
	}

	params := url.Values{}
	params.Add("client_id", c.cfg.AppID)
	params.Add("client_secret", c.cfg.AppSecret)
	params.Add("redirect_uri", c.cfg.RedirectURI)
	params.Add("code", code)

	return c.requestToken(ctx, "oauth_code", params)
}

// GetLongLivedToken troca um token de curta duração por um de longa duração
func (c *MetaClient) GetLongLivedToken(ctx context.Context, shortLivedToken string) (*metadomain.TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, domain.NewError(domain.KindCredential, "meta.long_lived_token", domain.ErrMissingToken)
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.cfg.AppID)
	params.Add("client_secret", c.cfg.AppSecret)
	params.Add("fb_exchange_token", shortLivedToken)

	return c.requestToken(ctx, "oauth_exchange", params)
}

func (c *MetaClient) requestToken(ctx context.Context, edge string, params url.Values) (*metadomain.TokenResponse, error) {
	body, err := c.get(ctx, edge, fmt.Sprintf("%s/oauth/access_token?%s", c.cfg.URL, params.Encode()), "")
	if err != nil {
		// falhas na troca de token sempre exigem nova autorização
		if domain.IsKind(err, domain.KindExternalAPI) {
			return nil, domain.NewError(domain.KindCredential, "meta."+edge, err)
		}
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, domain.NewError(domain.KindExternalAPI, "meta."+edge, fmt.Errorf("decode token response: %w", err))
	}

	if tokenResp.AccessToken == "" {
		return nil, domain.NewError(domain.KindCredential, "meta."+edge, domain.ErrMissingToken)
	}

	logrus.WithFields(logrus.Fields{
		"edge":       edge,
		"expires_in": FormatDuration(tokenResp.ExpiresIn),
	}).Info("meta: token de acesso obtido")

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration devolve nil quando a API não informa expiração
func CalculateTokenExpiration(now time.Time, expiresIn int64) *time.Time {
	if expiresIn <= 0 {
		return nil
	}

	expiry := now.Add(time.Duration(expiresIn) * time.Second)
	return &expiry
}

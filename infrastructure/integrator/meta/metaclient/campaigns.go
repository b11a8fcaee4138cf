package metaclient

import (
	"context"
	"net/url"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,objective,status")
	params.Add("limit", c.pageSize())

	return fetchAll[metadomain.Campaign](ctx, c, "campaigns", accessToken, "act_"+accountID+"/campaigns", params)
}

func (c *MetaClient) GetAdSets(ctx context.Context, accessToken, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,targeting")
	params.Add("limit", c.pageSize())

	return fetchAll[metadomain.AdSet](ctx, c, "adsets", accessToken, campaignID+"/adsets", params)
}

func (c *MetaClient) GetAds(ctx context.Context, accessToken, adSetID string) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,creative")
	params.Add("limit", c.pageSize())

	return fetchAll[metadomain.Ad](ctx, c, "ads", accessToken, adSetID+"/ads", params)
}

func (c *MetaClient) GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name,account_status,currency,timezone_name")
	params.Add("limit", c.pageSize())

	return fetchAll[metadomain.AdAccount](ctx, c, "adaccounts", accessToken, "me/adaccounts", params)
}

package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
)

const insightFields = "campaign_id,impressions,reach,clicks,spend,actions,action_values,ctr,cpc,cpm,frequency,date_start,date_stop"

type InsightsQuery struct {
	DatePreset string
	Level      metadomain.Level
}

// GetInsights retorna uma linha por entidade por dia para o preset informado
func (c *MetaClient) GetInsights(ctx context.Context, accessToken, objectID string, query InsightsQuery) ([]metadomain.Insight, error) {
	if query.DatePreset == "" {
		query.DatePreset = metadomain.DatePresetLast7Days
	}

	if query.Level == "" {
		query.Level = metadomain.LevelCampaign
	}

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("date_preset", query.DatePreset)
	params.Add("level", string(query.Level))
	params.Add("time_increment", "1")
	params.Add("limit", fmt.Sprint(c.cfg.InsightsPageSize))

	return fetchAll[metadomain.Insight](ctx, c, "insights", accessToken, objectID+"/insights", params)
}

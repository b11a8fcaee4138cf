package domain

import (
	"math"
	"time"
)

// MetricSample é uma linha diária de métricas de uma campanha, chaveada por (CampaignID, Date)
type MetricSample struct {
	ID          int64     `json:"id,omitempty"`
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Reach       int64     `json:"reach"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Conversions int64     `json:"conversions"`
	CTR         float64   `json:"ctr"`
	CPC         float64   `json:"cpc"`
	CPM         float64   `json:"cpm"`
	CPA         float64   `json:"cpa"`
	ROAS        float64   `json:"roas"`
	Frequency   float64   `json:"frequency"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate rejeita amostras com valores negativos ou não finitos
func (m *MetricSample) Validate() error {
	for _, v := range []float64{m.Spend, m.CTR, m.CPC, m.CPM, m.CPA, m.ROAS, m.Frequency} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewError(KindValidation, "metric.validate", ErrInvalidMetric)
		}
	}

	if m.Impressions < 0 || m.Reach < 0 || m.Clicks < 0 || m.Conversions < 0 {
		return NewError(KindValidation, "metric.validate", ErrNegativeMetric)
	}

	if m.Spend < 0 || m.CTR < 0 || m.CPC < 0 || m.CPM < 0 || m.CPA < 0 || m.ROAS < 0 || m.Frequency < 0 {
		return NewError(KindValidation, "metric.validate", ErrNegativeMetric)
	}

	return nil
}

// KPISet é o resultado consolidado de um conjunto de amostras
type KPISet struct {
	TotalSpend       float64 `json:"total_spend" validate:"gte=0"`
	TotalImpressions int64   `json:"total_impressions" validate:"gte=0"`
	TotalClicks      int64   `json:"total_clicks" validate:"gte=0"`
	TotalConversions int64   `json:"total_conversions" validate:"gte=0"`
	AvgCPA           float64 `json:"avg_cpa" validate:"gte=0"`
	AvgROAS          float64 `json:"avg_roas" validate:"gte=0"`
	AvgCTR           float64 `json:"avg_ctr" validate:"gte=0"`
	AvgCPC           float64 `json:"avg_cpc" validate:"gte=0"`
	AvgCPM           float64 `json:"avg_cpm" validate:"gte=0"`
}

type MetricsFilter struct {
	AccountIDs  []string
	CampaignIDs []string
	StartDate   time.Time
	EndDate     time.Time
}

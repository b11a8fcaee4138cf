package domain

import (
	"time"
)

type Period string

const (
	Period7d     Period = "7d"
	Period30d    Period = "30d"
	Period90d    Period = "90d"
	PeriodCustom Period = "custom"
)

type DashboardRequest struct {
	AccountID *string `validate:"omitempty,min=1"`
	Period    Period  `validate:"omitempty,oneof=7d 30d 90d custom"`
	StartDate *time.Time
	EndDate   *time.Time
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AccountCampaignCount struct {
	AccountID     string `json:"account_id"`
	AccountName   string `json:"account_name"`
	CampaignCount int    `json:"campaign_count"`
}

type DailyCPA struct {
	Date string  `json:"date"`
	CPA  float64 `json:"cpa"`
}

type CampaignROAS struct {
	CampaignName string  `json:"campaign_name"`
	ROAS         float64 `json:"roas"`
}

type ChartData struct {
	CPAEvolution   []DailyCPA     `json:"cpa_evolution"`
	ROASByCampaign []CampaignROAS `json:"roas_by_campaign"`
}

type CriticalCampaign struct {
	CampaignMetrics
	WorstSeverity Severity `json:"worst_severity"`
	Alerts        []*Alert `json:"alerts"`
}

type Dashboard struct {
	KPIs              KPISet                  `json:"kpis"`
	Period            Period                  `json:"period"`
	DateRange         DateRange               `json:"date_range"`
	Accounts          []*AccountCampaignCount `json:"accounts"`
	CriticalCampaigns []*CriticalCampaign     `json:"critical_campaigns"`
	ChartData         ChartData               `json:"chart_data"`
}

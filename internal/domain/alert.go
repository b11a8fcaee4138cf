package domain

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank ordena severidades da mais branda para a mais grave
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type AlertCategory string

const (
	AlertHighCPA        AlertCategory = "high_cpa"
	AlertLowROAS        AlertCategory = "low_roas"
	AlertLowCTR         AlertCategory = "low_ctr"
	AlertScaleCandidate AlertCategory = "scale_opportunity"
)

type AlertKind string

const (
	AlertKindWarning AlertKind = "warning"
	AlertKindError   AlertKind = "error"
	AlertKindInfo    AlertKind = "info"
	AlertKindSuccess AlertKind = "success"
)

// CampaignMetrics é a entrada do avaliador de alertas: campanha mais seus KPIs agregados
type CampaignMetrics struct {
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	AccountID    string   `json:"account_id"`
	DesiredCPA   *float64 `json:"desired_cpa,omitempty"`
	KPIs         KPISet   `json:"kpis"`
}

type Alert struct {
	CampaignID     string        `json:"campaign_id"`
	CampaignName   string        `json:"campaign_name"`
	Kind           AlertKind     `json:"type"`
	Category       AlertCategory `json:"category"`
	Severity       Severity      `json:"severity"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
}

type AlertsResponse struct {
	Alerts        []*Alert `json:"alerts"`
	Total         int      `json:"total"`
	CriticalCount int      `json:"critical_count"`
	AIConfigured  bool     `json:"ai_configured"`
}

package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha diária do endpoint /insights; a Graph API devolve números como texto
type Insight struct {
	CampaignID   string   `json:"campaign_id,omitempty"`
	Impressions  string   `json:"impressions"`
	Reach        string   `json:"reach"`
	Clicks       string   `json:"clicks"`
	Spend        string   `json:"spend"`
	Actions      []Action `json:"actions,omitempty"`
	ActionValues []Action `json:"action_values,omitempty"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	CPM          string   `json:"cpm"`
	Frequency    string   `json:"frequency"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
}

const (
	ActionPurchase             = "purchase"
	ActionLead                 = "lead"
	ActionCompleteRegistration = "complete_registration"
)

// Tipos de ação contabilizados como conversão
var ConversionActionTypes = map[string]struct{}{
	ActionPurchase:             {},
	ActionLead:                 {},
	ActionCompleteRegistration: {},
}

type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
)

const (
	DatePresetLast7Days = "last_7d"
	DatePresetMaximum   = "maximum"
)

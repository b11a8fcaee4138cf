package domain

import (
	"encoding/json"
	"time"
)

const (
	InsightTypeGeneral          = "general_insights"
	InsightTypeCampaignAnalysis = "campaign_analysis"
)

// Insight é o registro histórico de uma narrativa gerada
type Insight struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Content         string          `json:"content"`
	Confidence      float64         `json:"confidence"`
	Actionable      bool            `json:"actionable"`
	MetricsSnapshot json.RawMessage `json:"metrics_snapshot,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InsightPayload é o valor memorizado pelo cache
type InsightPayload struct {
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
	Type        string    `json:"type"`
	Confidence  float64   `json:"confidence"`
	Actionable  bool      `json:"actionable"`
}

type InsightContext struct {
	Period        string `json:"period,omitempty"`
	CampaignCount int    `json:"campaign_count,omitempty" validate:"gte=0"`
}

type InsightRequest struct {
	Metrics KPISet         `json:"metrics"`
	Context InsightContext `json:"context"`
}

type CampaignAnalysisRequest struct {
	CampaignID string   `json:"campaign_id" validate:"required"`
	Name       string   `json:"name"`
	Objective  string   `json:"objective"`
	DesiredCPA *float64 `json:"desired_cpa,omitempty"`
	KPIs       KPISet   `json:"kpis"`
}

type CampaignAnalysis struct {
	CampaignID  string    `json:"campaign_id"`
	Analysis    string    `json:"analysis"`
	GeneratedAt time.Time `json:"generated_at"`
	Type        string    `json:"type"`
}

type InsightHistoryFilter struct {
	Limit uint64 `validate:"min=1,max=100"`
	Type  string
}

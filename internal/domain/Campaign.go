package domain

import (
	"encoding/json"
	"time"
)

// Campaign é identificada pelo ExternalID dentro da conta.
// Objective e Status ficam nil quando a origem não os retorna, e o upsert preserva o valor gravado.
type Campaign struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Objective  *string   `json:"objective,omitempty"`
	Status     *string   `json:"status,omitempty"`
	DesiredCPA *float64  `json:"desired_cpa,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TargetingType string

const (
	TargetingCustomAudience TargetingType = "custom_audience"
	TargetingLookalike      TargetingType = "lookalike"
	TargetingInterests      TargetingType = "interests"
	TargetingBehaviors      TargetingType = "behaviors"
	TargetingDemographic    TargetingType = "demographic"
	TargetingUnknown        TargetingType = "unknown"
)

type AdSet struct {
	ID            string        `json:"id"`
	CampaignID    string        `json:"campaign_id"`
	ExternalID    string        `json:"external_id"`
	Name          string        `json:"name"`
	Status        *string       `json:"status,omitempty"`
	TargetingType TargetingType `json:"targeting_type"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Ad struct {
	ID         string          `json:"id"`
	AdSetID    string          `json:"adset_id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Status     *string         `json:"status,omitempty"`
	Creative   json.RawMessage `json:"creative,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CampaignSummary é a visão de listagem de campanhas de uma conta
type CampaignSummary struct {
	Campaign
	AdSetCount   int           `json:"adset_count"`
	LatestMetric *MetricSample `json:"latest_metric,omitempty"`
}

type SetDesiredCPARequest struct {
	DesiredCPA float64 `json:"desired_cpa" validate:"gt=0"`
}

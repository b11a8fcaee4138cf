package domain

import (
	"time"
)

type SyncMode string

const (
	SyncModeFull        SyncMode = "full"
	SyncModeIncremental SyncMode = "incremental"
)

func (m SyncMode) Valid() bool {
	return m == SyncModeFull || m == SyncModeIncremental
}

type SyncOutcome string

const (
	SyncOutcomeSuccess SyncOutcome = "success"
	SyncOutcomeError   SyncOutcome = "error"
)

// SyncRun é o registro imutável de uma tentativa de sincronização
type SyncRun struct {
	ID             string      `json:"id"`
	AccountID      string      `json:"account_id"`
	Mode           SyncMode    `json:"mode"`
	Outcome        SyncOutcome `json:"outcome"`
	RecordsTouched int         `json:"records_touched"`
	ErrorMessage   *string     `json:"error_message,omitempty"`
	Duration       int64       `json:"duration_ms"`
	CreatedAt      time.Time   `json:"created_at"`
}

type SyncResult struct {
	RecordsTouched int           `json:"records_touched"`
	Duration       time.Duration `json:"duration"`
}

type SyncRequest struct {
	Mode SyncMode `json:"sync_type" validate:"omitempty,oneof=full incremental"`
}

type SyncAcknowledgement struct {
	AccountID string   `json:"account_id"`
	Mode      SyncMode `json:"sync_type"`
	Status    string   `json:"status"`
	Message   string   `json:"message"`
}

const (
	SyncStatusInProgress     = "in_progress"
	SyncStatusAlreadyRunning = "already_running"
)

type SyncStatus struct {
	AccountID string     `json:"account_id"`
	LastSync  *time.Time `json:"last_sync,omitempty"`
	Running   bool       `json:"running"`
	Recent    []*SyncRun `json:"recent_syncs"`
}

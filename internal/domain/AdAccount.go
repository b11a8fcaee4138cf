package domain

import (
	"time"
)

// Account é uma conta de anúncios conectada por um usuário.
// AccessToken guarda sempre o blob cifrado pelo vault, nunca o token em texto puro.
type Account struct {
	ID          string     `json:"id"`
	UserID      int        `json:"user_id"`
	ExternalID  string     `json:"external_id"`
	Name        string     `json:"name"`
	AccessToken string     `json:"-"`
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastSync    *time.Time `json:"last_sync,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AccountResponse struct {
	ID            string     `json:"id"`
	ExternalID    string     `json:"external_id"`
	Name          string     `json:"name"`
	IsActive      bool       `json:"is_active"`
	LastSync      *time.Time `json:"last_sync,omitempty"`
	TokenExpiry   *time.Time `json:"token_expiry,omitempty"`
	CampaignCount int        `json:"campaign_count"`
}

type ConnectAccountRequest struct {
	Code string `json:"code" validate:"required"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

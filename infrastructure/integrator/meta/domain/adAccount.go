package metadomain

import "strings"

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
	TimezoneName  string `json:"timezone_name"`
}

// ExternalID devolve o identificador numérico da conta, sem o prefixo act_
func (a AdAccount) ExternalID() string {
	if a.AccountID != "" {
		return a.AccountID
	}
	return strings.TrimPrefix(a.ID, "act_")
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

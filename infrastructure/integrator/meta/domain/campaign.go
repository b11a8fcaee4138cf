package metadomain

import (
	"encoding/json"
)

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Response é o envelope paginado devolvido pelas edges da Graph API
type Response[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// Campos opcionais ficam nil quando a Graph API não os devolve
type Campaign struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Objective *string `json:"objective,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type Targeting struct {
	CustomAudiences    []json.RawMessage `json:"custom_audiences,omitempty"`
	LookalikeAudiences []json.RawMessage `json:"lookalike_audiences,omitempty"`
	Interests          []json.RawMessage `json:"interests,omitempty"`
	Behaviors          []json.RawMessage `json:"behaviors,omitempty"`
}

type AdSet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    *string    `json:"status,omitempty"`
	Targeting *Targeting `json:"targeting,omitempty"`
}

type Ad struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Status   *string         `json:"status,omitempty"`
	Creative json.RawMessage `json:"creative,omitempty"`
}

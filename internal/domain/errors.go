package domain

import (
	"errors"
	"fmt"
)

// Kind classifica falhas para que cada camada decida como propagá-las
type Kind string

const (
	KindExternalAPI   Kind = "external_api"
	KindCredential    Kind = "credential"
	KindPersistence   Kind = "persistence"
	KindGeneration    Kind = "generation"
	KindNotConfigured Kind = "not_configured"
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
)

var (
	ErrNegativeMetric   = errors.New("metric value must not be negative")
	ErrInvalidMetric    = errors.New("metric value is not numeric")
	ErrMissingToken     = errors.New("access token is missing")
	ErrTokenExpired     = errors.New("access token expired")
	ErrNotConfigured    = errors.New("narrative generator is not configured")
	ErrAccountNotFound  = errors.New("account not found")
	ErrCampaignNotFound = errors.New("campaign not found")
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsKind verifica se algum erro da cadeia pertence ao tipo informado
func IsKind(err error, kind Kind) bool {
	var domainErr *Error
	for err != nil {
		if !errors.As(err, &domainErr) {
			return false
		}
		if domainErr.Kind == kind {
			return true
		}
		err = domainErr.Err
	}
	return false
}

// WrapKind mantém a classificação de erros que já são de domínio e aplica o tipo informado aos demais
func WrapKind(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return err
	}
	return NewError(kind, op, err)
}

package analyzing

import (
	"errors"
)

// Erros específicos para o contexto de análise
var (
	// Erros de validação
	ErrCustomRangeRequired = errors.New("custom period requires start and end dates")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
)

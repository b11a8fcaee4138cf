package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError descreve um campo rejeitado
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error agrega os campos rejeitados de uma requisição
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct valida s e devolve um erro de domínio do tipo validação
func Struct(op string, s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return domain.NewError(domain.KindValidation, op, err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewError(domain.KindValidation, op, err)
	}

	result := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}

	return domain.NewError(domain.KindValidation, op, result)
}

// Details extrai os campos rejeitados para o corpo da resposta
func Details(err error) []FieldError {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s deve ser no mínimo %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ser no máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
	}
}

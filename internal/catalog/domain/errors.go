package domain

import (
	"errors"
	"fmt"
)

// Op names the action category of a catalog operation.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpStock  Op = "stock"
)

var (
	ErrOperationFailed = errors.New("operation_failed")
	ErrInvalidID       = errors.New("invalid_id")
	ErrMissingImage    = errors.New("missing_image")
	ErrImageTooLarge   = errors.New("image_too_large")
	ErrInvalidAction   = errors.New("invalid_action")
)

var opMessages = map[Op]string{
	OpLoad:   "Erro ao carregar produtos. Tente novamente mais tarde.",
	OpCreate: "Erro ao adicionar produto. Tente novamente mais tarde.",
	OpRemove: "Erro ao remover produto. Tente novamente mais tarde.",
	OpStock:  "Erro ao atualizar estoque. Tente novamente mais tarde.",
}

// OperationError is the single failure kind surfaced to the operator.
type OperationError struct {
	Op  Op
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// Message is the user-facing notification for the failed category.
func (e *OperationError) Message() string {
	if msg, ok := opMessages[e.Op]; ok {
		return msg
	}
	return "Erro inesperado. Tente novamente mais tarde."
}

func Failed(op Op, err error) error {
	return &OperationError{Op: op, Err: err}
}

// ValidationError blocks a submission before any backend call.
type ValidationError struct {
	Field   string
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var validationMessages = map[error]string{
	ErrMissingImage:  "Por favor, selecione uma imagem.",
	ErrImageTooLarge: "A imagem selecionada é muito grande.",
	ErrInvalidID:     "Produto inválido.",
	ErrInvalidAction: "Ação inválida.",
}

func Invalid(field string, err error) error {
	msg, ok := validationMessages[err]
	if !ok {
		msg = "Valor inválido."
	}
	return &ValidationError{Field: field, Err: err, Message: msg}
}

// UserMessage returns the text shown to the operator for err, or "" when
// err is not a catalog error.
func UserMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Message()
	}
	return ""
}

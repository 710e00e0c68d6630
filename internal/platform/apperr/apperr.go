// Package apperr holds the error set shared by every feature package.
// One tagged variant set, with the entity carried as data.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeNotFound          Code = "NOT_FOUND"
	CodeOutOfStock        Code = "OUT_OF_STOCK"
	CodeNoChange          Code = "NO_CHANGE"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeConflict          Code = "CONFLICT"
	CodeInternal          Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Entity  string `json:"entity,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Code, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }

func ErrNotFound(entity, msg string) *APIError {
	return &APIError{Code: CodeNotFound, Entity: entity, Message: msg}
}

func ErrOutOfStock(msg string) *APIError { return &APIError{Code: CodeOutOfStock, Message: msg} }

func ErrNoChange(msg string) *APIError { return &APIError{Code: CodeNoChange, Message: msg} }

func ErrInvalidTransition(msg string) *APIError {
	return &APIError{Code: CodeInvalidTransition, Message: msg}
}

func ErrConflict(entity, msg string) *APIError {
	return &APIError{Code: CodeConflict, Entity: entity, Message: msg}
}

// ErrInternal flags corrupted state or a bug. It must never be presented
// to the caller as a normal user error.
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeOutOfStock, CodeNoChange, CodeInvalidTransition, CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

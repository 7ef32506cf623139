package handler

import "github.com/alexrentacar/backoffice/internal/interfaces/http/dto"

// The types below only describe dto.Response for the swagger generator;
// handlers always write through the dto constructors.

// APIResponse is dto.Response with a typed data field.
// Meta is present on paginated lists only.
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message,omitempty"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the body of every non-validation failure
// @Description Failure envelope; error.code is one of the ERR_* codes
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Week is closed"`
	Error   *dto.ErrorInfo `json:"error"`
}

// ValidationErrorResponse is returned with 400. error.details lists one
// entry per rejected field when the request body failed binding.
// @Description Validation failure with per-field details
type ValidationErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Request validation failed"`
	Error   *dto.ErrorInfo `json:"error"`
}

// MessageData is the payload of calls that only acknowledge an action
type MessageData struct {
	Message string `json:"message" example:"Logged out"`
}

package response

import (
	"encoding/json"
	"net/http"
	"time"

	"answerhub/internal/contextutils"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse is the standard envelope for every JSON response.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// ErrorDetail carries error information in API responses.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder writes API responses with consistent shape and logging.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a response builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// Success writes a 200 response with the given payload.
func (b *Builder) Success(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.write(w, r, http.StatusOK, &APIResponse{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func (b *Builder) Created(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.write(w, r, http.StatusCreated, &APIResponse{Success: true, Data: data})
}

// NoContent writes an empty 204 response.
func (b *Builder) NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Error translates a service error into the matching HTTP response.
// Internal errors are masked; everything else passes its message through.
func (b *Builder) Error(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := services.GetServiceError(err)

	detail := &ErrorDetail{
		Type:    string(svcErr.Type),
		Message: svcErr.Message,
		Details: svcErr.Details,
	}
	if svcErr.Type == services.ErrorTypeInternal {
		detail.Message = "An unexpected error occurred"
		detail.Details = ""
		b.logger.Error("Internal error",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	b.write(w, r, svcErr.StatusCode, &APIResponse{Success: false, Error: detail})
}

// ErrorWithStatus writes an ad hoc error with an explicit status code.
func (b *Builder) ErrorWithStatus(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	b.write(w, r, status, &APIResponse{
		Success: false,
		Error:   &ErrorDetail{Type: errType, Message: message},
	})
}

func (b *Builder) write(w http.ResponseWriter, r *http.Request, status int, resp *APIResponse) {
	resp.RequestID = contextutils.GetRequestID(r.Context())
	resp.Timestamp = time.Now().Unix()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}

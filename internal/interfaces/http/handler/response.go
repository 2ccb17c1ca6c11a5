package handler

import (
	ideaapp "github.com/ideagen/backend/internal/application/idea"
	"github.com/ideagen/backend/internal/interfaces/http/dto"
)

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// IdeaResponse is the documented shape of a stored website idea
// @name HandlerIdeaResponse
type IdeaResponse = ideaapp.IdeaResponse

// HealthResponse is the body of the health endpoint
// @Description Liveness of the service and its dependencies
type HealthResponse struct {
	Status string            `json:"status" example:"healthy" enums:"healthy,unhealthy"`
	Time   string            `json:"time" example:"2026-01-23T12:00:00Z"`
	Checks map[string]string `json:"checks"`
}

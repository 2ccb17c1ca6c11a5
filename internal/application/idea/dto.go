package idea

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/idea"
	"github.com/ideagen/backend/internal/domain/shared"
)

// Length bounds the HTTP API enforces on an idea, counted in characters after trimming.
// They match the binding tags of CreateIdeaRequest.
const (
	MinIdeaLength = 5
	MaxIdeaLength = 200
)

// CreateIdeaRequest is the payload for generating sections from an idea
type CreateIdeaRequest struct {
	Idea string `json:"idea" binding:"required,min=5,max=200" example:"Landing page for a bakery"`
}

// Normalize trims the idea and re-checks the length bounds, which binding
// applied to the untrimmed text.
func (r *CreateIdeaRequest) Normalize() error {
	r.Idea = strings.TrimSpace(r.Idea)

	switch n := utf8.RuneCountInString(r.Idea); {
	case n == 0:
		return shared.NewValidationError("Website idea is required")
	case n < MinIdeaLength:
		return shared.NewValidationError(fmt.Sprintf("Website idea must be at least %d characters", MinIdeaLength))
	case n > MaxIdeaLength:
		return shared.NewValidationError(fmt.Sprintf("Website idea cannot exceed %d characters", MaxIdeaLength))
	}
	return nil
}

// SectionResponse is one generated section in API responses
type SectionResponse struct {
	Name    string `json:"name" example:"Hero Section"`
	Content string `json:"content"`
	Type    string `json:"type" example:"hero" enums:"hero,about,contact"`
}

// IdeaResponse is a stored website idea in API responses
type IdeaResponse struct {
	ID        uuid.UUID         `json:"id"`
	Idea      string            `json:"idea" example:"Landing page for a bakery"`
	Sections  []SectionResponse `json:"sections"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToIdeaResponse converts a domain WebsiteIdea to IdeaResponse
func ToIdeaResponse(w *idea.WebsiteIdea) IdeaResponse {
	sections := make([]SectionResponse, len(w.Sections))
	for i, s := range w.Sections {
		sections[i] = SectionResponse{
			Name:    s.Name,
			Content: s.Content,
			Type:    s.Type.String(),
		}
	}
	return IdeaResponse{
		ID:        w.ID,
		Idea:      w.Idea,
		Sections:  sections,
		CreatedAt: w.CreatedAt,
	}
}

// ToIdeaResponses converts a slice of domain WebsiteIdeas, never returning nil
func ToIdeaResponses(ideas []idea.WebsiteIdea) []IdeaResponse {
	responses := make([]IdeaResponse, len(ideas))
	for i := range ideas {
		responses[i] = ToIdeaResponse(&ideas[i])
	}
	return responses
}

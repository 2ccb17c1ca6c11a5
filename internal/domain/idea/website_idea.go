package idea

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/shared"
)

// WebsiteIdea is a submitted idea together with its generated sections.
// Once stored it is never updated or deleted.
type WebsiteIdea struct {
	ID        uuid.UUID
	Idea      string
	Sections  []Section
	CreatedAt time.Time
}

// NewWebsiteIdea generates the sections for a non-empty idea, kept exactly as given.
// Trimming and length bounds belong to the caller.
// The returned aggregate has no identity until a Repository saves it.
func NewWebsiteIdea(text string) (*WebsiteIdea, error) {
	if text == "" {
		return nil, shared.NewValidationError("Website idea is required")
	}

	return &WebsiteIdea{
		Idea:     text,
		Sections: GenerateSections(text),
	}, nil
}

// Reconstitute rebuilds a stored idea, checking the section invariant.
// CreatedAt is normalized to UTC whatever zone the driver scanned it in.
func Reconstitute(id uuid.UUID, text string, sections []Section, createdAt time.Time) (*WebsiteIdea, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("website idea: missing id")
	}
	if text == "" {
		return nil, fmt.Errorf("website idea %s: empty idea", id)
	}
	if err := validateSections(sections); err != nil {
		return nil, fmt.Errorf("website idea %s: %w", id, err)
	}

	return &WebsiteIdea{
		ID:        id,
		Idea:      text,
		Sections:  sections,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// IsPersisted reports whether a store has already assigned an identity
func (w *WebsiteIdea) IsPersisted() bool {
	return w.ID != uuid.Nil
}

// AssignIdentity sets the store-assigned id and creation time.
// It may only be called once.
func (w *WebsiteIdea) AssignIdentity(id uuid.UUID, createdAt time.Time) error {
	if w.IsPersisted() {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Website idea already has an identity")
	}
	if id == uuid.Nil {
		return shared.NewValidationError("Website idea id cannot be empty")
	}
	w.ID = id
	w.CreatedAt = createdAt
	return nil
}

package idea

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for website idea persistence.
// Records are insert-only: there is no update or delete.
type Repository interface {
	// Save inserts a new idea, assigning its ID and CreatedAt.
	// Saving an idea that already has an ID fails with shared.ErrAlreadyExists.
	Save(ctx context.Context, idea *WebsiteIdea) error

	// FindByID finds an idea by its ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*WebsiteIdea, error)

	// FindAll returns every stored idea ordered by creation time
	FindAll(ctx context.Context) ([]WebsiteIdea, error)
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/idea"
	"github.com/ideagen/backend/internal/domain/shared"
	"github.com/ideagen/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIdeaRepository implements idea.Repository using GORM
type GormIdeaRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormIdeaRepository creates a new GormIdeaRepository
func NewGormIdeaRepository(db *gorm.DB) *GormIdeaRepository {
	return &GormIdeaRepository{db: db, now: time.Now}
}

// Save inserts a new website idea and its sections in one transaction.
// The store assigns the id and creation time and writes them back into w.
func (r *GormIdeaRepository) Save(ctx context.Context, w *idea.WebsiteIdea) error {
	if w.IsPersisted() {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Website idea has already been stored")
	}

	id := uuid.New()
	createdAt := r.now().UTC().Truncate(time.Microsecond)

	model := models.WebsiteIdeaModelFromDomain(w)
	model.AssignIdentity(id, createdAt)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(model.Sections) > 0 {
			if err := tx.Create(&model.Sections).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert website idea: %w", err)
	}

	return w.AssignIdentity(id, createdAt)
}

// FindByID finds a website idea by its ID
func (r *GormIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*idea.WebsiteIdea, error) {
	var model models.WebsiteIdeaModel
	if err := r.withSections(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find website idea %s: %w", id, err)
	}
	return model.ToDomain()
}

// FindAll returns every stored website idea, oldest first
func (r *GormIdeaRepository) FindAll(ctx context.Context) ([]idea.WebsiteIdea, error) {
	var rows []models.WebsiteIdeaModel
	if err := r.withSections(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list website ideas: %w", err)
	}

	ideas := make([]idea.WebsiteIdea, 0, len(rows))
	for i := range rows {
		w, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *w)
	}
	return ideas, nil
}

func (r *GormIdeaRepository) withSections(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// Ensure GormIdeaRepository implements idea.Repository
var _ idea.Repository = (*GormIdeaRepository)(nil)

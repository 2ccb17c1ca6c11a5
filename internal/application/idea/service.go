package idea

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/idea"
	"github.com/ideagen/backend/internal/domain/shared"
	"github.com/ideagen/backend/internal/infrastructure/logger"
	"github.com/ideagen/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrIdeaNotFound is returned when no idea exists for an id
var ErrIdeaNotFound = shared.NewDomainError(shared.ErrNotFound.Code, "Website idea not found")

// Service generates, stores and retrieves website ideas
type Service struct {
	repo    idea.Repository
	metrics *telemetry.IdeaMetrics
}

// NewService creates a new Service
func NewService(repo idea.Repository) *Service {
	return &Service{repo: repo}
}

// SetIdeaMetrics sets the business metrics collector
func (s *Service) SetIdeaMetrics(m *telemetry.IdeaMetrics) {
	s.metrics = m
}

// Create generates the sections for req.Idea as given and stores the result.
// Only an empty idea is rejected; HTTP callers run Normalize first.
func (s *Service) Create(ctx context.Context, req CreateIdeaRequest) (*IdeaResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "idea.create")
	defer span.End()

	w, err := idea.NewWebsiteIdea(req.Idea)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRejected(ctx)
		}
		return nil, err
	}

	if err := s.repo.Save(ctx, w); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to store website idea", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.String("idea.id", w.ID.String()))

	if s.metrics != nil {
		s.metrics.RecordGenerated(ctx, len(w.Sections))
	}
	logger.L(ctx).Info("Website idea generated",
		zap.String("idea_id", w.ID.String()),
		zap.Int("sections", len(w.Sections)),
	)

	response := ToIdeaResponse(w)
	return &response, nil
}

// GetByID retrieves a stored idea
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*IdeaResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "idea.get", attribute.String("idea.id", id.String()))
	defer span.End()

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.recordLookup(ctx, telemetry.LookupResultNotFound)
			return nil, ErrIdeaNotFound
		}
		s.recordLookup(ctx, telemetry.LookupResultError)
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to load website idea",
			zap.String("idea_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.recordLookup(ctx, telemetry.LookupResultFound)
	response := ToIdeaResponse(w)
	return &response, nil
}

// List returns every stored idea in creation order
func (s *Service) List(ctx context.Context) ([]IdeaResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "idea.list")
	defer span.End()

	ideas, err := s.repo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to list website ideas", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("idea.count", len(ideas)))
	return ToIdeaResponses(ideas), nil
}

func (s *Service) recordLookup(ctx context.Context, result telemetry.LookupResult) {
	if s.metrics != nil {
		s.metrics.RecordLookup(ctx, result)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/idea"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultIdeaTTL is how long a website idea stays cached
	DefaultIdeaTTL = time.Hour
	// DefaultIdeaKeyPrefix namespaces idea entries in Redis
	DefaultIdeaKeyPrefix = "ideagen:idea:"
)

// CachedIdeaRepository is a read-through Redis cache in front of an idea.Repository.
// Stored ideas are immutable, so entries never need invalidation; they only expire.
// Redis failures are logged and the call falls through to the wrapped repository.
type CachedIdeaRepository struct {
	next      idea.Repository
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// CachedIdeaRepositoryOption is a functional option for configuring the cache
type CachedIdeaRepositoryOption func(*CachedIdeaRepository)

// WithIdeaTTL sets the entry expiry
func WithIdeaTTL(ttl time.Duration) CachedIdeaRepositoryOption {
	return func(c *CachedIdeaRepository) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) CachedIdeaRepositoryOption {
	return func(c *CachedIdeaRepository) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) CachedIdeaRepositoryOption {
	return func(c *CachedIdeaRepository) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCachedIdeaRepository wraps next with a Redis cache.
// The caller retains ownership of client and is responsible for closing it.
func NewCachedIdeaRepository(next idea.Repository, client *redis.Client, opts ...CachedIdeaRepositoryOption) *CachedIdeaRepository {
	c := &CachedIdeaRepository{
		next:      next,
		client:    client,
		ttl:       DefaultIdeaTTL,
		keyPrefix: DefaultIdeaKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save stores the idea and warms the cache with the persisted record
func (c *CachedIdeaRepository) Save(ctx context.Context, w *idea.WebsiteIdea) error {
	if err := c.next.Save(ctx, w); err != nil {
		return err
	}
	c.set(ctx, w)
	return nil
}

// FindByID serves the idea from Redis, loading and caching it from the store on a miss
func (c *CachedIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*idea.WebsiteIdea, error) {
	if w, ok := c.get(ctx, id); ok {
		return w, nil
	}

	w, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, w)
	return w, nil
}

// FindAll always reads the store; the full list grows with every insert
func (c *CachedIdeaRepository) FindAll(ctx context.Context) ([]idea.WebsiteIdea, error) {
	return c.next.FindAll(ctx)
}

func (c *CachedIdeaRepository) key(id uuid.UUID) string {
	return c.keyPrefix + id.String()
}

func (c *CachedIdeaRepository) get(ctx context.Context, id uuid.UUID) (*idea.WebsiteIdea, bool) {
	key := c.key(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss for website idea", zap.String("id", id.String()))
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to get website idea from cache",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, false
	}

	w, err := decodeIdea(data)
	if err != nil {
		c.logger.Warn("Dropping corrupt cache entry",
			zap.String("id", id.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false
	}

	c.logger.Debug("Cache hit for website idea", zap.String("id", id.String()))
	return w, true
}

func (c *CachedIdeaRepository) set(ctx context.Context, w *idea.WebsiteIdea) {
	data, err := encodeIdea(w)
	if err != nil {
		c.logger.Warn("Failed to encode website idea", zap.String("id", w.ID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(w.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set website idea in cache",
			zap.String("id", w.ID.String()),
			zap.Error(err))
	}
}

type cachedSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

type cachedIdea struct {
	ID        uuid.UUID       `json:"id"`
	Idea      string          `json:"idea"`
	Sections  []cachedSection `json:"sections"`
	CreatedAt time.Time       `json:"created_at"`
}

func encodeIdea(w *idea.WebsiteIdea) ([]byte, error) {
	entry := cachedIdea{
		ID:        w.ID,
		Idea:      w.Idea,
		Sections:  make([]cachedSection, len(w.Sections)),
		CreatedAt: w.CreatedAt,
	}
	for i, s := range w.Sections {
		entry.Sections[i] = cachedSection{Name: s.Name, Content: s.Content, Type: string(s.Type)}
	}
	return json.Marshal(entry)
}

func decodeIdea(data []byte) (*idea.WebsiteIdea, error) {
	var entry cachedIdea
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal website idea: %w", err)
	}
	sections := make([]idea.Section, len(entry.Sections))
	for i, s := range entry.Sections {
		sections[i] = idea.Section{Name: s.Name, Content: s.Content, Type: idea.SectionType(s.Type)}
	}
	return idea.Reconstitute(entry.ID, entry.Idea, sections, entry.CreatedAt)
}

// Ensure CachedIdeaRepository implements idea.Repository
var _ idea.Repository = (*CachedIdeaRepository)(nil)

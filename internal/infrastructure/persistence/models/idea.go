package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideagen/backend/internal/domain/idea"
)

// WebsiteIdeaModel is the persistence model for the WebsiteIdea aggregate root.
type WebsiteIdeaModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Idea      string                `gorm:"type:text;not null"`
	Sections  []WebsiteSectionModel `gorm:"foreignKey:IdeaID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"not null;index:idx_website_ideas_created_at"`
}

// TableName returns the table name for GORM
func (WebsiteIdeaModel) TableName() string {
	return "website_ideas"
}

// ToDomain converts the persistence model to a domain WebsiteIdea.
// Sections must already be ordered by position.
func (m *WebsiteIdeaModel) ToDomain() (*idea.WebsiteIdea, error) {
	sections := make([]idea.Section, len(m.Sections))
	for i := range m.Sections {
		sections[i] = m.Sections[i].ToDomain()
	}
	w, err := idea.Reconstitute(m.ID, m.Idea, sections, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt website idea row: %w", err)
	}
	return w, nil
}

// FromDomain populates the persistence model from a domain WebsiteIdea.
func (m *WebsiteIdeaModel) FromDomain(w *idea.WebsiteIdea) {
	m.ID = w.ID
	m.Idea = w.Idea
	m.CreatedAt = w.CreatedAt
	m.Sections = make([]WebsiteSectionModel, len(w.Sections))
	for i, s := range w.Sections {
		m.Sections[i] = WebsiteSectionModel{
			IdeaID:   w.ID,
			Position: i,
			Type:     string(s.Type),
			Name:     s.Name,
			Content:  s.Content,
		}
	}
}

// WebsiteIdeaModelFromDomain creates a new persistence model from a domain WebsiteIdea.
func WebsiteIdeaModelFromDomain(w *idea.WebsiteIdea) *WebsiteIdeaModel {
	m := &WebsiteIdeaModel{}
	m.FromDomain(w)
	return m
}

// AssignIdentity sets the row id and creation time, propagating the id to the section rows
func (m *WebsiteIdeaModel) AssignIdentity(id uuid.UUID, createdAt time.Time) {
	m.ID = id
	m.CreatedAt = createdAt
	for i := range m.Sections {
		m.Sections[i].IdeaID = id
	}
}

// WebsiteSectionModel is one generated section of a website idea.
type WebsiteSectionModel struct {
	IdeaID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"primaryKey;autoIncrement:false"`
	Type     string    `gorm:"type:varchar(20);not null"`
	Name     string    `gorm:"type:varchar(50);not null"`
	Content  string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (WebsiteSectionModel) TableName() string {
	return "website_idea_sections"
}

// ToDomain converts the persistence model to a domain Section.
func (m *WebsiteSectionModel) ToDomain() idea.Section {
	return idea.Section{
		Name:    m.Name,
		Content: m.Content,
		Type:    idea.SectionType(m.Type),
	}
}

// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// A website idea is stored as one row in website_ideas plus one row per generated
// section in website_idea_sections, ordered by position.
package models

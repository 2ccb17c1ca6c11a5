package idea

import "fmt"

// SectionType identifies which part of the generated website a section fills
type SectionType string

const (
	SectionTypeHero    SectionType = "hero"
	SectionTypeAbout   SectionType = "about"
	SectionTypeContact SectionType = "contact"
)

// SectionOrder is the fixed order in which sections are generated and stored
var SectionOrder = []SectionType{SectionTypeHero, SectionTypeAbout, SectionTypeContact}

// IsValid checks if the section type is one of the known types
func (t SectionType) IsValid() bool {
	switch t {
	case SectionTypeHero, SectionTypeAbout, SectionTypeContact:
		return true
	}
	return false
}

// String returns the string representation
func (t SectionType) String() string {
	return string(t)
}

// Section is one generated block of website copy
type Section struct {
	Name    string
	Content string
	Type    SectionType
}

// validateSections checks that sections hold exactly one of each type in SectionOrder
func validateSections(sections []Section) error {
	if len(sections) != len(SectionOrder) {
		return fmt.Errorf("expected %d sections, got %d", len(SectionOrder), len(sections))
	}
	for i, want := range SectionOrder {
		got := sections[i].Type
		if !got.IsValid() {
			return fmt.Errorf("section %d: unknown type %q", i, got)
		}
		if got != want {
			return fmt.Errorf("section %d: expected type %q, got %q", i, want, got)
		}
	}
	return nil
}

package idea

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	heroTemplate    = "Welcome to {idea}! This is your compelling hero section that immediately captures your visitors' attention. Here you'll showcase your main value proposition and call-to-action that drives conversions."
	aboutTemplate   = "Learn more about {idea}. This section provides detailed information about your business, mission, and what makes you unique. Share your story, values, and the passion behind your {lower}."
	contactTemplate = "Get in touch with {idea}! We'd love to hear from you. Whether you have questions, need support, or want to learn more about our services, don't hesitate to reach out. Our team is here to help you succeed."
)

// GenerateSections builds the hero, about and contact sections for an idea.
// It is pure: the same idea always yields the same sections.
func GenerateSections(idea string) []Section {
	// A Caser carries state and must not be shared across goroutines.
	lower := cases.Lower(language.Und).String(idea)
	r := strings.NewReplacer("{idea}", idea, "{lower}", lower)

	return []Section{
		{
			Name:    "Hero Section",
			Content: r.Replace(heroTemplate),
			Type:    SectionTypeHero,
		},
		{
			Name:    "About Section",
			Content: r.Replace(aboutTemplate),
			Type:    SectionTypeAbout,
		},
		{
			Name:    "Contact Section",
			Content: r.Replace(contactTemplate),
			Type:    SectionTypeContact,
		},
	}
}

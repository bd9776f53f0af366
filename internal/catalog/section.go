package catalog

// Section is a grammar topic key. The set is closed: every question in
// the catalog belongs to exactly one of these, and the stats and quiz
// generation code iterates over AllSections.
type Section string

const (
	SectionVerbs         Section = "verbs"
	SectionArticles      Section = "articles"
	SectionPrepositions  Section = "prepositions"
	SectionWordFormation Section = "word_formation"
	SectionTranslation   Section = "translation"
)

// AllSections returns the section keys in display order.
func AllSections() []Section {
	return []Section{
		SectionVerbs,
		SectionArticles,
		SectionPrepositions,
		SectionWordFormation,
		SectionTranslation,
	}
}

// DisplayName returns a human-readable name for a section.
func DisplayName(s Section) string {
	switch s {
	case SectionVerbs:
		return "Verbs & Tenses"
	case SectionArticles:
		return "Articles"
	case SectionPrepositions:
		return "Prepositions"
	case SectionWordFormation:
		return "Word Formation"
	case SectionTranslation:
		return "Translation"
	default:
		return string(s)
	}
}

// Valid reports whether s is a member of the closed section set.
func Valid(s Section) bool {
	switch s {
	case SectionVerbs, SectionArticles, SectionPrepositions,
		SectionWordFormation, SectionTranslation:
		return true
	}
	return false
}

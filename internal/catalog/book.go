package catalog

// BlankMarker is the placeholder in question text where the answer goes.
// Each question contains it exactly once; screens restyle it when
// rendering.
const BlankMarker = "____"

// Question is a single fill-in-the-blank exercise. Questions are
// immutable: the catalog is compiled into the binary and never written.
type Question struct {
	ID       string   `json:"id"`
	Section  Section  `json:"-"`
	Context  string   `json:"context"`
	Text     string   `json:"text"`
	Correct  []string `json:"correct"`
	Rule     string   `json:"rule"`
	Examples []string `json:"examples"`
}

// Book is a themed, ordered collection of questions partitioned by
// section.
type Book struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	sections map[Section][]Question
}

// QuestionsBySection returns the book's questions for one section.
func (b *Book) QuestionsBySection(s Section) []Question {
	return b.sections[s]
}

// AllQuestions returns every question in the book, ordered by section
// display order.
func (b *Book) AllQuestions() []Question {
	var all []Question
	for _, s := range AllSections() {
		all = append(all, b.sections[s]...)
	}
	return all
}

// QuestionCount returns the total number of questions in the book.
func (b *Book) QuestionCount() int {
	n := 0
	for _, qs := range b.sections {
		n += len(qs)
	}
	return n
}

package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/books.json data/books_schema.json
var dataFS embed.FS

var (
	loadOnce sync.Once
	loadErr  error
	books    []*Book
	byID     map[string]*Book
)

// bookJSON mirrors the on-disk catalog layout: questions grouped under
// their section key, section derived from the key at load time.
type bookJSON struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Subtitle  string                `json:"subtitle"`
	Questions map[string][]Question `json:"questions"`
}

type catalogJSON struct {
	Books []bookJSON `json:"books"`
}

// Books returns all embedded books in catalog order.
// The catalog is parsed and schema-checked on first use; a malformed
// embedded catalog is a build defect and panics.
func Books() []*Book {
	mustLoad()
	return books
}

// BookByID returns the book with the given id, or nil.
func BookByID(id string) *Book {
	mustLoad()
	return byID[id]
}

func mustLoad() {
	loadOnce.Do(func() { loadErr = load() })
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: %v", loadErr))
	}
}

func load() error {
	raw, err := dataFS.ReadFile("data/books.json")
	if err != nil {
		return fmt.Errorf("read embedded catalog: %w", err)
	}

	if err := validateCatalog(raw); err != nil {
		return err
	}

	var parsed catalogJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]string) // question id -> book id
	byID = make(map[string]*Book, len(parsed.Books))

	for _, bj := range parsed.Books {
		b := &Book{
			ID:       bj.ID,
			Title:    bj.Title,
			Subtitle: bj.Subtitle,
			sections: make(map[Section][]Question),
		}
		for key, qs := range bj.Questions {
			section := Section(key)
			if !Valid(section) {
				return fmt.Errorf("book %q: unknown section %q", bj.ID, key)
			}
			for i := range qs {
				qs[i].Section = section
				if prev, dup := seen[qs[i].ID]; dup {
					return fmt.Errorf("duplicate question id %q (books %q and %q)", qs[i].ID, prev, bj.ID)
				}
				seen[qs[i].ID] = bj.ID
			}
			b.sections[section] = qs
		}
		if _, dup := byID[b.ID]; dup {
			return fmt.Errorf("duplicate book id %q", b.ID)
		}
		byID[b.ID] = b
		books = append(books, b)
	}
	return nil
}

// validateCatalog checks the raw catalog bytes against the embedded JSON
// schema before decoding, so content mistakes fail with a schema path
// instead of a zero-valued struct.
func validateCatalog(raw []byte) error {
	schemaRaw, err := dataFS.ReadFile("data/books_schema.json")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaRaw))
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://books.json", schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema://books.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("catalog schema validation: %w", err)
	}
	return nil
}

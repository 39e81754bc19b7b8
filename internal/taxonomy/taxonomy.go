// Package taxonomy implements the diagram taxonomy for Scribe.
// It provides a strongly typed, immutable lookup of diagram categories,
// their context indicators, and their description prompt templates,
// validated once at load time.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Unclassified is the reserved category for images that could not be
// matched to any taxonomy entry. It never appears in a taxonomy document.
const Unclassified = "unclassified"

// Entry describes one diagram category: its indicator vocabulary for
// context-based hypotheses and its prompt material for description generation.
type Entry struct {
	Category          string
	Keywords          []string
	ContextIndicators []string
	DescriptionPrompt string
	FocusAreas        []string
	DisallowedTerms   []string
}

// Table is the immutable category lookup for a run. Entry order matches
// the declaration order of the source document.
type Table struct {
	entries map[string]Entry
	order   []string
}

// document mirrors the on-disk taxonomy structure.
type document struct {
	Categories        []string              `json:"categories" yaml:"categories"`
	CategoryPrompts   map[string]promptSpec `json:"category_prompts" yaml:"category_prompts"`
	ContextIndicators map[string][]string   `json:"context_indicators" yaml:"context_indicators"`
}

type promptSpec struct {
	Prompt          string   `json:"prompt" yaml:"prompt"`
	FocusAreas      []string `json:"focus_areas" yaml:"focus_areas"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
	DisallowedTerms []string `json:"disallowed_terms" yaml:"disallowed_terms"`
}

// Load reads and validates a taxonomy document. The format is selected by
// file extension: .yaml and .yml decode as YAML, everything else as JSON.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	default:
		return Parse(data, FormatJSON)
	}
}

// Format identifies a taxonomy document encoding.
type Format string

// Supported taxonomy document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes and validates a taxonomy document in the given format.
func Parse(data []byte, format Format) (*Table, error) {
	var doc document

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse taxonomy: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse taxonomy: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return build(doc)
}

func build(doc document) (*Table, error) {
	if len(doc.Categories) == 0 {
		return nil, ErrNoCategories
	}

	t := &Table{
		entries: make(map[string]Entry, len(doc.Categories)),
		order:   make([]string, 0, len(doc.Categories)),
	}

	for _, name := range doc.Categories {
		category := Normalize(name)
		if category == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidCategory)
		}
		if category == Unclassified {
			return nil, fmt.Errorf("%w: %q", ErrReservedCategory, name)
		}
		if _, ok := t.entries[category]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}

		def := doc.CategoryPrompts[name]
		if def.Prompt == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingPrompt, name)
		}

		t.entries[category] = Entry{
			Category:          category,
			Keywords:          def.Keywords,
			ContextIndicators: doc.ContextIndicators[name],
			DescriptionPrompt: def.Prompt,
			FocusAreas:        def.FocusAreas,
			DisallowedTerms:   def.DisallowedTerms,
		}
		t.order = append(t.order, category)
	}

	declared := make(map[string]bool, len(doc.Categories))
	for _, name := range doc.Categories {
		declared[name] = true
	}
	for name := range doc.CategoryPrompts {
		if !declared[name] {
			return nil, fmt.Errorf("%w: %q in category_prompts", ErrUndeclaredCategory, name)
		}
	}
	for name := range doc.ContextIndicators {
		if !declared[name] {
			return nil, fmt.Errorf("%w: %q in context_indicators", ErrUndeclaredCategory, name)
		}
	}

	return t, nil
}

// Entry looks up a category by its normalized name.
func (t *Table) Entry(category string) (Entry, bool) {
	e, ok := t.entries[Normalize(category)]
	return e, ok
}

// Categories returns category names in declaration order.
func (t *Table) Categories() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of categories in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// Resolve scans untrusted free text for a known category name and returns
// the normalized category. Matching is case-insensitive substring matching
// over the closed vocabulary; when several category names occur, the
// longest name wins, and position in the text breaks remaining ties.
func (t *Table) Resolve(text string) (string, bool) {
	normalized := Normalize(text)

	best := ""
	bestIdx := -1
	for _, category := range t.order {
		idx := strings.Index(normalized, category)
		if idx < 0 {
			continue
		}
		if len(category) > len(best) || (len(category) == len(best) && idx < bestIdx) {
			best = category
			bestIdx = idx
		}
	}

	return best, best != ""
}

// Normalize lowercases a category reference and collapses underscores and
// runs of whitespace to single spaces.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

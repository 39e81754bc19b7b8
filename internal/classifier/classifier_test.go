package classifier_test

import (
	"fmt"
	"testing"

	"github.com/JaimeStill/scribe/internal/classifier"
	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
)

func buildTable(t *testing.T, indicators map[string][]string, order []string) *taxonomy.Table {
	t.Helper()

	doc := `{"categories": [`
	for i, c := range order {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf("%q", c)
	}
	doc += `], "category_prompts": {`
	for i, c := range order {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf(`%q: {"prompt": "p"}`, c)
	}
	doc += `}, "context_indicators": {`
	first := true
	for _, c := range order {
		terms, ok := indicators[c]
		if !ok {
			continue
		}
		if !first {
			doc += ","
		}
		first = false
		doc += fmt.Sprintf("%q: [", c)
		for j, term := range terms {
			if j > 0 {
				doc += ","
			}
			doc += fmt.Sprintf("%q", term)
		}
		doc += "]"
	}
	doc += "}}"

	table, err := taxonomy.Parse([]byte(doc), taxonomy.FormatJSON)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func TestClassifyUniqueMatch(t *testing.T) {
	table := buildTable(t, map[string][]string{
		"class diagram":    {"class", "inheritance"},
		"sequence diagram": {"lifeline", "message"},
	}, []string{"class diagram", "sequence diagram"})

	window := document.Window{
		Preceding: "The class hierarchy uses inheritance throughout.",
	}

	hyp := classifier.Classify(window, table)
	if hyp.Category != "class diagram" {
		t.Fatalf("Category = %q, want class diagram", hyp.Category)
	}
	if hyp.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", hyp.Confidence)
	}
}

func TestClassifyPartialScore(t *testing.T) {
	table := buildTable(t, map[string][]string{
		"class diagram": {"class", "inheritance", "uml", "attributes"},
	}, []string{"class diagram"})

	window := document.Window{Following: "Each class is listed below."}

	hyp := classifier.Classify(window, table)
	if hyp.Category != "class diagram" {
		t.Fatalf("Category = %q, want class diagram", hyp.Category)
	}
	if hyp.Confidence != 0.25 {
		t.Errorf("Confidence = %v, want 0.25", hyp.Confidence)
	}
}

func TestClassifyNoSignal(t *testing.T) {
	table := buildTable(t, map[string][]string{
		"class diagram": {"class"},
	}, []string{"class diagram"})

	hyp := classifier.Classify(document.Window{Preceding: "a photograph of a sunset"}, table)
	if !hyp.Unknown() {
		t.Errorf("hypothesis = %+v, want unknown", hyp)
	}
	if hyp.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", hyp.Confidence)
	}
}

func TestClassifyTieYieldsUnknown(t *testing.T) {
	indicators := map[string][]string{
		"class diagram":    {"diagram"},
		"sequence diagram": {"diagram"},
	}
	window := document.Window{Preceding: "The diagram below."}

	// A tie must yield unknown under every declaration order.
	orders := [][]string{
		{"class diagram", "sequence diagram"},
		{"sequence diagram", "class diagram"},
	}

	for _, order := range orders {
		table := buildTable(t, indicators, order)
		hyp := classifier.Classify(window, table)
		if !hyp.Unknown() {
			t.Errorf("order %v: hypothesis = %+v, want unknown", order, hyp)
		}
	}
}

func TestClassifyWordBoundaries(t *testing.T) {
	table := buildTable(t, map[string][]string{
		"class diagram": {"class"},
	}, []string{"class diagram"})

	// "classic" must not count as a hit for "class".
	hyp := classifier.Classify(document.Window{Preceding: "a classic painting"}, table)
	if !hyp.Unknown() {
		t.Errorf("hypothesis = %+v, want unknown", hyp)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	table := buildTable(t, map[string][]string{
		"class diagram": {"inheritance"},
	}, []string{"class diagram"})

	hyp := classifier.Classify(document.Window{Heading: "Inheritance Model"}, table)
	if hyp.Category != "class diagram" {
		t.Errorf("Category = %q, want class diagram", hyp.Category)
	}
}

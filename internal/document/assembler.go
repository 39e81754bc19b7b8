package document

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/JaimeStill/scribe/internal/taxonomy"
)

// Assemble produces the annotated document: the original source with a
// rendered annotation block inserted immediately after each image's raw
// markup, in document order. All bytes outside the inserted blocks are
// preserved verbatim.
func Assemble(source string, records []Record) string {
	if len(records) == 0 {
		return source
	}

	var sb strings.Builder
	last := 0
	for _, r := range records {
		sb.WriteString(source[last:r.Image.Ref.End])
		sb.WriteString(annotationBlock(&r))
		last = r.Image.Ref.End
	}
	sb.WriteString(source[last:])

	return sb.String()
}

func annotationBlock(r *Record) string {
	return fmt.Sprintf(
		"\n\n**Diagram Type:** %s\n\n**Technical Description:**\n%s\n",
		CategoryLabel(r.Confirmed),
		r.Description,
	)
}

// CategoryLabel renders a normalized category name as a display label.
func CategoryLabel(category string) string {
	if category == "" {
		category = taxonomy.Unclassified
	}

	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

package prompts

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/scribe/internal/classifier"
	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
)

// Context excerpt budgets per stage, matching the window bounds the
// vision model can use productively.
const (
	confirmExcerpt  = 300
	describeExcerpt = 200
)

// Confirm composes the confirmation prompt: the context hypothesis is
// stated as a suggestion, never as ground truth, and the model must
// answer from the closed category list or report a quality note instead
// of guessing.
func Confirm(table *taxonomy.Table, img document.Image, hyp classifier.Hypothesis) string {
	var sb strings.Builder

	sb.WriteString("Identify the type of this software engineering diagram.\n\n")

	if !hyp.Unknown() {
		fmt.Fprintf(
			&sb,
			"Surrounding text suggests this might be a %s; treat that as a hint to confirm or correct, not as the answer.\n",
			hyp.Category,
		)
	}
	if img.Context.Heading != "" {
		fmt.Fprintf(&sb, "Section heading: %s\n", img.Context.Heading)
	}
	if img.Ref.AltText != "" {
		fmt.Fprintf(&sb, "Image alt text: %s\n", img.Ref.AltText)
	}

	writeContext(&sb, img.Context, confirmExcerpt)

	fmt.Fprintf(
		&sb,
		"\nExamine the visual elements carefully and choose exactly one category from: %s.\n\n",
		strings.Join(table.Categories(), ", "),
	)

	sb.WriteString("Also report:\n")
	sb.WriteString("- how many separate diagrams of that type the image contains\n")
	sb.WriteString("- UML stereotype annotations only as they literally appear, e.g. <<include>>; never report a relationship whose stereotype label is not visible\n")
	sb.WriteString("- if the image is illegible or too degraded to classify, a quality note describing the problem instead of a guess\n\n")

	sb.WriteString(`Respond with JSON: {"category": "...", "instances": 1, "quality_note": "", "stereotypes": []}`)

	return sb.String()
}

// Describe composes the description prompt for a confirmed category from
// the taxonomy entry's template and focus areas. When multi is set, the
// model is instructed to enumerate each diagram instance separately. A
// non-empty qualityNote adds an omit-don't-infer instruction for
// unreadable elements.
func Describe(entry taxonomy.Entry, img document.Image, multi bool, qualityNote string) string {
	var sb strings.Builder

	sb.WriteString(entry.DescriptionPrompt)
	sb.WriteString("\n")

	if len(entry.FocusAreas) > 0 {
		sb.WriteString("\nFocus on:\n")
		for _, area := range entry.FocusAreas {
			fmt.Fprintf(&sb, "- %s\n", area)
		}
	}

	if multi {
		sb.WriteString("\nThe image contains more than one diagram of this type. Describe each instance in its own enumerated section; do not merge them into a single description.\n")
	}

	if qualityNote != "" {
		fmt.Fprintf(&sb, "\nImage quality caveat: %s. Omit unreadable elements rather than inferring them.\n", qualityNote)
	}

	writeContext(&sb, img.Context, describeExcerpt)

	return sb.String()
}

// Fallback composes the generic prompt for unclassified images: a literal
// visual description with no domain inference.
func Fallback(img document.Image, qualityNote string) string {
	var sb strings.Builder

	sb.WriteString("Describe this image literally: the shapes, text labels, and connections that are visible. Do not infer what kind of diagram it is or what domain it belongs to.\n")

	if qualityNote != "" {
		fmt.Fprintf(&sb, "\nImage quality caveat: %s. Omit unreadable elements rather than inferring them.\n", qualityNote)
	}

	return sb.String()
}

func writeContext(sb *strings.Builder, w document.Window, limit int) {
	if w.Preceding != "" {
		fmt.Fprintf(sb, "\nText before the image:\n%s\n", clip(w.Preceding, limit))
	}
	if w.Following != "" {
		fmt.Fprintf(sb, "\nText after the image:\n%s\n", clip(w.Following, limit))
	}
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

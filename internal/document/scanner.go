package document

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// headingLookback bounds how far above an image the scanner searches for
// the nearest section heading.
const headingLookback = 1000

var (
	imagePattern   = regexp.MustCompile(`!\[(?P<alt>[^\]]*)\]\((?P<path>[^)]+)\)`)
	headingPattern = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
)

// Scan parses markdown text into an ordered sequence of image references
// with derived context windows. budget bounds the characters of preceding
// and following text captured per image; windows are trimmed at paragraph
// or heading breaks when one falls inside the budget. Relative image paths
// resolve against dir, and references whose resolved path does not exist
// are marked missing. Consecutive images share overlapping windows; that
// is an accepted approximation, not an error.
func Scan(text, dir string, budget int) []Image {
	matches := imagePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	images := make([]Image, 0, len(matches))
	for i, m := range matches {
		start, end := m[0], m[1]
		alt := text[m[2]:m[3]]
		rawPath := strings.TrimSpace(text[m[4]:m[5]])

		ref := Ref{
			Path:      resolvePath(rawPath, dir),
			RawPath:   rawPath,
			AltText:   alt,
			Position:  i,
			RawMarkup: text[start:end],
			Start:     start,
			End:       end,
		}

		if info, err := os.Stat(ref.Path); err != nil {
			ref.Missing = true
		} else {
			ref.SizeBytes = info.Size()
		}

		images = append(images, Image{
			Ref: ref,
			Context: Window{
				Preceding: precedingText(text, start, budget),
				Following: followingText(text, end, budget),
				Heading:   nearestHeading(text, start),
			},
		})
	}

	return images
}

func resolvePath(p, dir string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// precedingText captures up to budget characters ending at the image
// markup, trimmed to the most recent paragraph or heading break. The
// separator adjoining the markup itself is stripped first, so an image
// sitting in its own paragraph still captures the paragraph above it.
func precedingText(text string, start, budget int) string {
	from := max(start-budget, 0)
	window := strings.TrimRight(text[from:start], " \t\n")

	cut := max(strings.LastIndex(window, "\n\n"), strings.LastIndex(window, "\n#"))
	if cut > 0 {
		window = window[cut:]
	}

	return strings.TrimSpace(window)
}

// followingText captures up to budget characters after the image markup,
// trimmed to the next paragraph or heading break.
func followingText(text string, end, budget int) string {
	to := min(end+budget, len(text))
	window := text[end:to]

	cut := len(window)
	for _, brk := range []string{"\n\n", "\n#"} {
		if idx := strings.Index(window, brk); idx > 0 && idx < cut {
			cut = idx
		}
	}
	window = window[:cut]

	return strings.TrimSpace(window)
}

// nearestHeading returns the text of the closest markdown heading above
// the image within the lookback span, or "" when none is found.
func nearestHeading(text string, start int) string {
	from := max(start-headingLookback, 0)
	found := headingPattern.FindAllStringSubmatch(text[from:start], -1)
	if len(found) == 0 {
		return ""
	}
	return strings.TrimSpace(found[len(found)-1][1])
}

package vision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/scribe/pkg/formatting"
)

// LoadImage reads an image file and encodes it as a data URI for the
// inference service. Files larger than maxBytes are rejected with
// ErrImageTooLarge before being read; a maxBytes of 0 disables the cap.
func LoadImage(path string, maxBytes int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}

	if maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf(
			"%w: %s exceeds %s",
			ErrImageTooLarge,
			formatting.FormatBytes(info.Size(), 1),
			formatting.FormatBytes(maxBytes, 0),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, imageFormat(path))
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}

func imageFormat(path string) document.ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return document.JPEG
	default:
		return document.PNG
	}
}

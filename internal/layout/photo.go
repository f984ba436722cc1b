package layout

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"
)

// Photo box on the first page.
const (
	PhotoX    = 165.0
	PhotoY    = 15.0
	PhotoSize = 25.0
)

// PhotoError reports a profile photo that cannot be placed.
type PhotoError struct {
	Message string
	Cause   error
}

func (e *PhotoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile photo: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile photo: %s", e.Message)
}

func (e *PhotoError) Unwrap() error {
	return e.Cause
}

// DecodePhoto parses a base64 image data URL and returns the raw bytes and
// the PDF image type ("JPG" or "PNG").
func DecodePhoto(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", &PhotoError{Message: "not a data URL"}
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", &PhotoError{Message: "data URL is not base64 encoded"}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", &PhotoError{Message: "invalid base64 payload", Cause: err}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &PhotoError{Message: "unreadable image", Cause: err}
	}
	switch format {
	case "jpeg":
		return data, "JPG", nil
	case "png":
		return data, "PNG", nil
	default:
		return nil, "", &PhotoError{Message: "unsupported image format " + format}
	}
}

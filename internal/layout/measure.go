package layout

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
)

// Measurer reports the printed width of text in millimetres.
type Measurer interface {
	Width(text string, style FontStyle, size float64) float64
}

// FontMeasurer measures text with the Helvetica core font metrics, the same
// font the PDF renderer writes with.
type FontMeasurer struct {
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewFontMeasurer creates a FontMeasurer.
func NewFontMeasurer() *FontMeasurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &FontMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Width returns the width of text at size points in style.
func (m *FontMeasurer) Width(text string, style FontStyle, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont("Helvetica", string(style), size)
	return m.pdf.GetStringWidth(m.translate(text))
}

// Wrap splits text into lines no wider than width. Explicit newlines start a
// new line; words wider than a whole line are broken between characters.
func Wrap(m Measurer, text string, style FontStyle, size, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.Width(candidate, style, size) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
			for m.Width(current, style, size) > width {
				head, tail := splitWord(m, current, style, size, width)
				lines = append(lines, head)
				current = tail
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits width (at least one
// rune) and the remainder.
func splitWord(m Measurer, word string, style FontStyle, size, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.Width(string(runes[:n+1]), style, size) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

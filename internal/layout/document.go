// Package layout places a profile onto fixed-size resume pages.
//
// The engine produces a Document: a list of pages holding positioned text
// runs, underline rules and images, in millimetres from the top-left corner.
// Turning a Document into bytes is the job of the rendering package.
package layout

import "github.com/jonathan/career-guide/internal/theme"

// Page geometry (A4, millimetres).
const (
	PageWidth      = 210.0
	PageHeight     = 297.0
	Margin         = 20.0
	TopMargin      = 20.0
	BottomMargin   = 270.0 // no text is placed below this line
	PrintableWidth = PageWidth - 2*Margin
)

// FontStyle follows the PDF core font style letters.
type FontStyle string

// Font styles.
const (
	StyleNormal FontStyle = ""
	StyleBold   FontStyle = "B"
	StyleItalic FontStyle = "I"
)

// Align is the horizontal anchor of a text run relative to its X.
type Align int

// Alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextRun is one line of text. Y is the baseline.
type TextRun struct {
	X     float64
	Y     float64
	Text  string
	Size  float64 // points
	Style FontStyle
	Color theme.RGB
	Align Align
}

// Rule is a straight line, used to underline section headers.
type Rule struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          theme.RGB
}

// Image is a raster placed at a fixed box.
type Image struct {
	X, Y, W, H float64
	Format     string // "JPG" or "PNG"
	Data       []byte
}

// Page is the content of one page.
type Page struct {
	Texts  []TextRun
	Rules  []Rule
	Images []Image
}

// Find returns the first run whose text equals text.
func (p *Page) Find(text string) (TextRun, bool) {
	for _, r := range p.Texts {
		if r.Text == text {
			return r, true
		}
	}
	return TextRun{}, false
}

// Document is a laid-out resume.
type Document struct {
	Author string
	Theme  theme.ResumeTheme
	Width  float64
	Height float64
	Pages  []*Page
}

// Lines returns every text run's text in placement order.
func (d *Document) Lines() []string {
	var out []string
	for _, p := range d.Pages {
		for _, r := range p.Texts {
			out = append(out, r.Text)
		}
	}
	return out
}

// Contains reports whether any page has a run with exactly text.
func (d *Document) Contains(text string) bool {
	for _, p := range d.Pages {
		if _, ok := p.Find(text); ok {
			return true
		}
	}
	return false
}

package rendering

import (
	"bytes"
	"fmt"
	"log"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/career-guide/internal/layout"
)

// RenderPDF writes doc as an A4 PDF using the Helvetica core fonts. Text is
// converted to cp1252; characters outside it print as substitutes. An image
// that cannot be decoded is left out and logged.
func RenderPDF(doc *layout.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, &RenderError{Message: "document has no pages"}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Author+" Resume", true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("career-guide", true)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for i, page := range doc.Pages {
		pdf.AddPage()

		for _, rule := range page.Rules {
			pdf.SetDrawColor(int(rule.Color.R), int(rule.Color.G), int(rule.Color.B))
			pdf.SetLineWidth(rule.Width)
			pdf.Line(rule.X1, rule.Y1, rule.X2, rule.Y2)
		}

		for _, run := range page.Texts {
			pdf.SetFont("Helvetica", string(run.Style), run.Size)
			pdf.SetTextColor(int(run.Color.R), int(run.Color.G), int(run.Color.B))
			text := translate(run.Text)
			x := run.X
			switch run.Align {
			case layout.AlignCenter:
				x -= pdf.GetStringWidth(text) / 2
			case layout.AlignRight:
				x -= pdf.GetStringWidth(text)
			}
			pdf.Text(x, run.Y, text)
		}

		for j, img := range page.Images {
			name := fmt.Sprintf("image-%d-%d", i, j)
			opts := fpdf.ImageOptions{ImageType: img.Format}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
			if pdf.Err() {
				log.Printf("[RESUME] Skipping image on page %d: %v", i+1, pdf.Error())
				pdf.ClearError()
				continue
			}
			pdf.ImageOptions(name, img.X, img.Y, img.W, img.H, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

package rendering

import (
	"context"
	"fmt"

	"github.com/jonathan/career-guide/internal/layout"
)

// PDF backends.
const (
	EngineFPDF   = "fpdf"
	EngineChrome = "chrome"
)

// Exporter produces resume PDFs with the configured backend.
type Exporter struct {
	Engine  string
	Printer *ChromePrinter
}

// NewExporter creates an exporter for engine ("" selects fpdf).
func NewExporter(engine string) (*Exporter, error) {
	switch engine {
	case "", EngineFPDF:
		return &Exporter{Engine: EngineFPDF}, nil
	case EngineChrome:
		return &Exporter{Engine: EngineChrome, Printer: NewChromePrinter()}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q (want %s or %s)", engine, EngineFPDF, EngineChrome)
	}
}

// PDF renders doc to PDF bytes.
func (e *Exporter) PDF(ctx context.Context, doc *layout.Document) ([]byte, error) {
	if e.Engine != EngineChrome {
		return RenderPDF(doc)
	}
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	return e.Printer.PrintPDF(ctx, html)
}

package rendering

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	previewOnce sync.Once
	previewTmpl *template.Template
	previewErr  error
)

// htmlPage is one page of the preview template.
type htmlPage struct {
	Number int
	Rules  []template.CSS
	Runs   []htmlRun
	Images []htmlImage
}

type htmlRun struct {
	Text  string
	Style template.CSS
}

type htmlImage struct {
	Src   template.URL
	Style template.CSS
}

type htmlData struct {
	Title  string
	Width  float64
	Height float64
	Pages  []htmlPage
}

// RenderHTML renders doc as a print-ready HTML preview with every run
// absolutely positioned in millimetres, matching the PDF output.
func RenderHTML(doc *layout.Document) (string, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return "", &RenderError{Message: "document has no pages"}
	}

	tmpl, err := previewTemplate()
	if err != nil {
		return "", err
	}

	data := htmlData{
		Title:  doc.Author + " Resume",
		Width:  doc.Width,
		Height: doc.Height,
	}
	for i, page := range doc.Pages {
		hp := htmlPage{Number: i + 1}
		for _, rule := range page.Rules {
			hp.Rules = append(hp.Rules, ruleStyle(rule))
		}
		for _, run := range page.Texts {
			hp.Runs = append(hp.Runs, htmlRun{Text: run.Text, Style: runStyle(run)})
		}
		for _, img := range page.Images {
			hp.Images = append(hp.Images, htmlImage{
				Src: template.URL(dataURL(img)),
				Style: template.CSS(fmt.Sprintf("left:%.2fmm;top:%.2fmm;width:%.2fmm;height:%.2fmm",
					img.X, img.Y, img.W, img.H)),
			})
		}
		data.Pages = append(data.Pages, hp)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

func previewTemplate() (*template.Template, error) {
	previewOnce.Do(func() {
		previewTmpl, previewErr = template.ParseFS(templateFS, "templates/resume.html.tmpl")
		if previewErr != nil {
			previewErr = &TemplateError{Message: "failed to parse template", Cause: previewErr}
		}
	})
	return previewTmpl, previewErr
}

// runStyle positions a run so its baseline sits at Y.
func runStyle(run layout.TextRun) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "left:%.2fmm;top:%.2fmm;font-size:%.1fpt;color:%s", run.X, run.Y, run.Size, hex(run.Color))
	switch run.Style {
	case layout.StyleBold:
		b.WriteString(";font-weight:bold")
	case layout.StyleItalic:
		b.WriteString(";font-style:italic")
	}
	switch run.Align {
	case layout.AlignCenter:
		b.WriteString(";transform:translate(-50%,-0.8em)")
	case layout.AlignRight:
		b.WriteString(";transform:translate(-100%,-0.8em)")
	default:
		b.WriteString(";transform:translateY(-0.8em)")
	}
	return template.CSS(b.String())
}

func ruleStyle(rule layout.Rule) template.CSS {
	return template.CSS(fmt.Sprintf("left:%.2fmm;top:%.2fmm;width:%.2fmm;border-top:%.2fmm solid %s",
		rule.X1, rule.Y1, rule.X2-rule.X1, rule.Width, hex(rule.Color)))
}

func dataURL(img layout.Image) string {
	mime := "image/jpeg"
	if img.Format == "PNG" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func hex(c theme.RGB) string {
	return c.Hex()
}

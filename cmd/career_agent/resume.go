package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/metrics"
	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/rendering"
	"github.com/spf13/cobra"
)

func newResumeCmd(o *rootOptions) *cobra.Command {
	var (
		outFile   string
		themeName string
		engine    string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Export the signed-in user's resume",
		Long:  "Lays out the profile on A4 pages with the selected theme and writes it as a PDF (or an HTML preview).",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.profiles.Load(cmd.Context(), session)
			if err != nil {
				return err
			}

			if themeName == "" {
				themeName = p.Theme
			}
			doc := layout.NewEngine(nil).Layout(p, themeName, session.Name)
			log.Printf("[RESUME] Laid out %d page(s) with theme %q", len(doc.Pages), doc.Theme.Name)
			if app.cfg.Verbose {
				verbose := observability.NewPrinter(cmd.ErrOrStderr())
				verbose.PrintProfile(p)
				verbose.PrintLayout(doc)
			}

			var data []byte
			switch format {
			case "pdf":
				if engine == "" {
					engine = app.cfg.PDFEngine
				}
				exporter, expErr := rendering.NewExporter(engine)
				if expErr != nil {
					return expErr
				}
				if exporter.Printer != nil {
					exporter.Printer.Verbose = app.cfg.Verbose
				}
				data, err = exporter.PDF(cmd.Context(), doc)
			case "html":
				var html string
				html, err = rendering.RenderHTML(doc)
				data = []byte(html)
			default:
				return fmt.Errorf("unknown format %q (want pdf or html)", format)
			}
			metrics.ObserveExport(format, len(doc.Pages), err)
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = rendering.FileName(session.Name)
				if format == "html" {
					outFile = strings.TrimSuffix(outFile, ".pdf") + ".html"
				}
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write resume: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.label("profile.resumeSaved"), outFile)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default <Name>_Resume.pdf)")
	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "Resume theme (default: the profile's theme)")
	cmd.Flags().StringVar(&engine, "engine", "", "PDF engine: fpdf or chrome (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format: pdf or html")
	return cmd
}

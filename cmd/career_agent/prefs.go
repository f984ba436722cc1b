package main

import (
	"fmt"

	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [id]",
		Short: "List the application themes or switch to one",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				t, err := app.prefs.SetTheme(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", app.label("nav.theme"), t.Name)
				return nil
			}

			current := app.prefs.CurrentTheme().ID
			for _, t := range theme.AppThemes() {
				fmt.Fprintf(out, "%s %-7s %s\n", marker(t.ID == current), t.ID, t.Name)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Resume themes:")
			for _, name := range theme.ResumeThemeNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		}),
	}
}

func newLanguageCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "language [code]",
		Short: "List the supported languages or switch to one",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				active, err := app.prefs.SetLanguage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				lang := i18n.Info(active)
				fmt.Fprintf(out, "%s: %s (%s)\n", app.label("nav.language"), lang.NativeName, lang.Code)
				return nil
			}

			current := app.prefs.Language()
			for _, l := range i18n.Languages() {
				fmt.Fprintf(out, "%s %-4s %-10s %s\n", marker(l.Code == current), l.Code, l.Name, l.NativeName)
			}
			return nil
		}),
	}
}

func marker(active bool) string {
	if active {
		return "*"
	}
	return " "
}

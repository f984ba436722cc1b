package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/spf13/cobra"
)

func newRecommendCmd(o *rootOptions) *cobra.Command {
	var (
		req    types.AssessmentRequest
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get career recommendations for an education level, stream, skills and interests",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			verbose := observability.NewPrinter(cmd.ErrOrStderr())
			if app.cfg.Verbose {
				verbose.PrintAssessment(&req)
			}

			counselor, closeFn, err := app.counselor(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			bundle, err := counselor.RecommendCareers(cmd.Context(), req)
			if err != nil {
				return userFacing(err)
			}
			if app.cfg.Verbose {
				verbose.PrintRecommendations(bundle)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(bundle)
			}
			printRecommendations(cmd.OutOrStdout(), app, bundle)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&req.EducationLevel, "education", "", "Education level, e.g. 10th, 12th, Diploma (required)")
	f.StringVar(&req.Stream, "stream", "", "Stream or field of study (required)")
	f.StringVar(&req.Skills, "skills", "", "Skills (required)")
	f.StringVar(&req.Interests, "interests", "", "Interests (required)")
	f.BoolVar(&asJSON, "json", false, "Print the raw recommendation JSON")
	for _, name := range []string{"education", "stream", "skills", "interests"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printRecommendations(w io.Writer, app *application, b *types.RecommendationBundle) {
	fmt.Fprintf(w, "%s\n  %s\n\n", app.label("home.analysis"), b.Analysis)

	fmt.Fprintln(w, app.label("home.topCareers"))
	for i, c := range b.TopCareers {
		fmt.Fprintf(w, "  %d. %s\n     %s\n     %s: %s\n", i+1, c.Title, c.Description, app.label("home.salary"), c.Salary)
	}

	printList(w, app.label("home.courses"), b.Courses)
	printList(w, app.label("home.jobRoles"), b.JobRoles)
	printList(w, app.label("home.skillsToImprove"), b.SkillsToImprove)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n  - %s\n", title, strings.Join(items, "\n  - "))
}

// userFacing replaces counselor failures with their generic message.
func userFacing(err error) error {
	var svcErr *counsel.ServiceError
	if errors.As(err, &svcErr) {
		return errors.New(svcErr.UserMessage())
	}
	return err
}

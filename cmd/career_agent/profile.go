package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/career-guide/internal/profile"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/spf13/cobra"
)

func newProfileCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the signed-in user's profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(o),
		newProfileImportCmd(o),
		newProfileSetCmd(o),
		newProfileAddCmd(o),
		newProfileRemoveCmd(o),
		newProfilePhotoCmd(o),
	)
	return cmd
}

// editProfile loads the signed-in user's profile, applies change and saves it.
func editProfile(cmd *cobra.Command, app *application, change func(p *types.Profile) error) error {
	session, err := app.session(cmd.Context())
	if err != nil {
		return err
	}
	p, err := app.profiles.Load(cmd.Context(), session)
	if err != nil {
		return err
	}
	if err := change(p); err != nil {
		return err
	}
	if err := app.profiles.Save(cmd.Context(), session.Email, p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.label("profile.saved"))
	return nil
}

func newProfileShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the profile as JSON",
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
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}),
	}
}

func newProfileImportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the profile with the contents of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read profile file: %w", err)
			}
			imported := types.NewProfile()
			if err := json.Unmarshal(data, imported); err != nil {
				return fmt.Errorf("failed to parse profile JSON: %w", err)
			}
			return editProfile(cmd, app, func(p *types.Profile) error {
				*p = *imported
				return nil
			})
		}),
	}
}

func newProfileSetCmd(o *rootOptions) *cobra.Command {
	var (
		about, phone, address, email, themeName string
		skills, technical, languages, extra     string
		accomplishments                         string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set profile fields; list flags take comma-separated values",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			flags := cmd.Flags()
			return editProfile(cmd, app, func(p *types.Profile) error {
				if flags.Changed("about") {
					p.About = about
				}
				if flags.Changed("phone") {
					p.Contact.Phone = phone
				}
				if flags.Changed("contact-email") {
					p.Contact.Email = email
				}
				if flags.Changed("address") {
					p.Contact.Address = address
				}
				if flags.Changed("theme") {
					p.Theme = themeName
				}
				if flags.Changed("skills") {
					p.Skills = types.ParseList(skills)
				}
				if flags.Changed("technical-skills") {
					p.TechnicalSkills = types.ParseList(technical)
				}
				if flags.Changed("languages") {
					p.Languages = types.ParseList(languages)
				}
				if flags.Changed("extracurricular") {
					p.Extracurricular = types.ParseList(extra)
				}
				if flags.Changed("accomplishments") {
					p.Accomplishments = types.ParseList(accomplishments)
				}
				return nil
			})
		}),
	}

	f := cmd.Flags()
	f.StringVar(&about, "about", "", "Professional summary")
	f.StringVar(&phone, "phone", "", "Contact phone")
	f.StringVar(&email, "contact-email", "", "Contact email")
	f.StringVar(&address, "address", "", "Contact address")
	f.StringVar(&themeName, "theme", "", "Resume theme name")
	f.StringVar(&skills, "skills", "", "Soft skills")
	f.StringVar(&technical, "technical-skills", "", "Technical skills")
	f.StringVar(&languages, "languages", "", "Spoken languages")
	f.StringVar(&extra, "extracurricular", "", "Extracurricular activities")
	f.StringVar(&accomplishments, "accomplishments", "", "Accomplishments")
	return cmd
}

func newProfileAddCmd(o *rootOptions) *cobra.Command {
	var (
		level, stream, institution, year  string
		role, company, start, end, length string
		title, tech, link, description    string
		name, issuer, date                string
		platform, url                     string
	)

	sections := map[string]func(p *types.Profile){
		"education": func(p *types.Profile) {
			p.AddEducation(types.Education{Level: level, Stream: stream, Institution: institution, Year: year})
		},
		"experience": func(p *types.Profile) {
			p.AddExperience(types.Experience{Role: role, Company: company, StartDate: start, EndDate: end, Description: description})
		},
		"internship": func(p *types.Profile) {
			p.AddInternship(types.Internship{Role: role, Company: company, Duration: length, Description: description})
		},
		"project": func(p *types.Profile) {
			p.AddProject(types.Project{Title: title, Description: description, Technologies: types.ParseList(tech), Link: link})
		},
		"certification": func(p *types.Profile) {
			p.AddCertification(types.Certification{Name: name, Issuer: issuer, Date: date})
		},
		"course": func(p *types.Profile) {
			p.AddCourse(types.Course{Name: name, Institution: institution, Date: date})
		},
		"social": func(p *types.Profile) {
			p.AddSocialProfile(types.SocialProfile{Platform: platform, URL: url})
		},
	}

	cmd := &cobra.Command{
		Use:       "add <education|experience|internship|project|certification|course|social>",
		Short:     "Append an entry to a profile section",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: sortedKeys(sections),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			return editProfile(cmd, app, func(p *types.Profile) error {
				sections[args[0]](p)
				return nil
			})
		}),
	}

	f := cmd.Flags()
	f.StringVar(&level, "level", "", "Education level")
	f.StringVar(&stream, "stream", "", "Education stream")
	f.StringVar(&institution, "institution", "", "School, college or course provider")
	f.StringVar(&year, "year", "", "Year of completion")
	f.StringVar(&role, "role", "", "Role title")
	f.StringVar(&company, "company", "", "Company")
	f.StringVar(&start, "start", "", "Start date")
	f.StringVar(&end, "end", "", "End date")
	f.StringVar(&length, "duration", "", "Internship duration")
	f.StringVar(&title, "title", "", "Project title")
	f.StringVar(&tech, "tech", "", "Project technologies, comma-separated")
	f.StringVar(&link, "link", "", "Project link")
	f.StringVar(&description, "description", "", "Description")
	f.StringVar(&name, "name", "", "Certification or course name")
	f.StringVar(&issuer, "issuer", "", "Certification issuer")
	f.StringVar(&date, "date", "", "Certification or course date")
	f.StringVar(&platform, "platform", "", "Social platform")
	f.StringVar(&url, "url", "", "Social profile URL")
	return cmd
}

func newProfileRemoveCmd(o *rootOptions) *cobra.Command {
	sections := map[string]func(p *types.Profile, i int) bool{
		"education":     (*types.Profile).RemoveEducationAt,
		"experience":    (*types.Profile).RemoveExperienceAt,
		"internship":    (*types.Profile).RemoveInternshipAt,
		"project":       (*types.Profile).RemoveProjectAt,
		"certification": (*types.Profile).RemoveCertificationAt,
		"course":        (*types.Profile).RemoveCourseAt,
		"social":        (*types.Profile).RemoveSocialProfileAt,
	}

	return &cobra.Command{
		Use:   "remove <section> <index>",
		Short: "Remove the entry at a zero-based index from a profile section",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			remove, ok := sections[args[0]]
			if !ok {
				return fmt.Errorf("unknown section %q (want one of %s)", args[0], strings.Join(sortedKeys(sections), ", "))
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			return editProfile(cmd, app, func(p *types.Profile) error {
				if !remove(p, index) {
					return fmt.Errorf("no %s entry at index %d", args[0], index)
				}
				return nil
			})
		}),
	}
}

func newProfilePhotoCmd(o *rootOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "photo [image-file]",
		Short: "Set or remove the profile photo (images up to 2MB)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			if remove {
				return editProfile(cmd, app, func(p *types.Profile) error {
					profile.RemovePhoto(p)
					return nil
				})
			}
			if len(args) != 1 {
				return fmt.Errorf("an image file or --remove is required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}
			return editProfile(cmd, app, func(p *types.Profile) error {
				err := profile.SetPhoto(p, mimeFromExt(args[0]), data)
				switch err.(type) {
				case *profile.ErrPhotoNotImage:
					return fmt.Errorf("%s", app.label("profile.photoNotImage"))
				case *profile.ErrPhotoTooLarge:
					return fmt.Errorf("%s", app.label("profile.photoTooLarge"))
				}
				return err
			})
		}),
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the current photo")
	return cmd
}

// mimeFromExt guesses an image type from the file extension. Unknown
// extensions return "" so the content is sniffed.
func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

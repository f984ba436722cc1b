package server

import (
	"net/http"

	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/theme"
)

// ThemesResponse lists the application palettes and resume themes.
type ThemesResponse struct {
	App           []theme.AppTheme    `json:"app"`
	DefaultApp    string              `json:"defaultApp"`
	Resume        []theme.ResumeTheme `json:"resume"`
	DefaultResume string              `json:"defaultResume"`
}

// LocalesResponse lists the supported languages.
type LocalesResponse struct {
	Languages []i18n.Language `json:"languages"`
	Default   string          `json:"default"`
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	names := theme.ResumeThemeNames()
	resume := make([]theme.ResumeTheme, 0, len(names))
	for _, name := range names {
		resume = append(resume, theme.Resume(name))
	}

	s.jsonResponse(w, http.StatusOK, ThemesResponse{
		App:           theme.AppThemes(),
		DefaultApp:    theme.DefaultAppTheme,
		Resume:        resume,
		DefaultResume: theme.DefaultResumeTheme,
	})
}

func (s *Server) handleLocales(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, LocalesResponse{
		Languages: i18n.Languages(),
		Default:   i18n.DefaultLanguage,
	})
}

// handleLocale returns the translation table for a language. Supported
// languages without a table are served the English one; Content-Language
// names the table actually returned.
func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	code, ok := i18n.ResolveCode(r.PathValue("code"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "unsupported language: "+r.PathValue("code"))
		return
	}

	table, err := i18n.LoadTable(code)
	if err != nil {
		code = i18n.DefaultLanguage
		if table, err = i18n.LoadTable(code); err != nil {
			s.failure(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Language", code)
	s.jsonResponse(w, http.StatusOK, table)
}

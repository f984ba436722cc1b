package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/career-guide/internal/layout"
	"github.com/jonathan/career-guide/internal/metrics"
	"github.com/jonathan/career-guide/internal/profile"
	"github.com/jonathan/career-guide/internal/rendering"
	"github.com/jonathan/career-guide/internal/server/middleware"
	"github.com/jonathan/career-guide/internal/types"
)

// handleGetProfile returns the caller's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	p, err := s.profiles.Load(r.Context(), session)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handlePutProfile replaces the caller's profile.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	p := types.NewProfile()
	if err := decodeJSON(r, p); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.profiles.Save(r.Context(), session.Email, p); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handlePutPhoto sets the profile photo from the raw request body.
func (s *Server) handlePutPhoto(w http.ResponseWriter, r *http.Request) {
	s.updateProfile(w, r, func(p *types.Profile) error {
		data, err := io.ReadAll(io.LimitReader(r.Body, profile.MaxPhotoBytes+1))
		if err != nil {
			return &ErrValidation{Field: "body", Message: "Failed to read photo"}
		}
		mime := r.Header.Get("Content-Type")
		if mime == "application/octet-stream" {
			mime = ""
		}
		return profile.SetPhoto(p, mime, data)
	})
}

// handleDeletePhoto removes the profile photo.
func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	s.updateProfile(w, r, func(p *types.Profile) error {
		profile.RemovePhoto(p)
		return nil
	})
}

// updateProfile loads the caller's profile, applies change and saves it.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, change func(*types.Profile) error) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	p, err := s.profiles.Load(r.Context(), session)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := change(p); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.profiles.Save(r.Context(), session.Email, p); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// layoutResume lays out the caller's resume. The "theme" query parameter
// overrides the theme saved in the profile.
func (s *Server) layoutResume(r *http.Request) (*layout.Document, error) {
	session, err := middleware.GetSession(r)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Load(r.Context(), session)
	if err != nil {
		return nil, err
	}

	themeName := p.Theme
	if q := r.URL.Query().Get("theme"); q != "" {
		themeName = q
	}
	return s.engine.Layout(p, themeName, session.Name), nil
}

// handleResumePDF downloads the caller's resume as a PDF attachment.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := s.layoutResume(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	pdf, err := s.exporter.PDF(r.Context(), doc)
	metrics.ObserveExport("pdf", len(doc.Pages), err)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(rendering.FileName(doc.Author)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// attachment builds a Content-Disposition value for filename, quoting or
// RFC 2231 encoding it as needed.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

// handleResumeHTML returns the HTML preview of the caller's resume.
func (s *Server) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	doc, err := s.layoutResume(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	html, err := rendering.RenderHTML(doc)
	metrics.ObserveExport("html", len(doc.Pages), err)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

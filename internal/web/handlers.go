package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"daygrid/internal/journal"
	"daygrid/internal/markdown"
)

// gridParams is the view selection every page and form round-trips:
// which month is shown and the raw search query.
type gridParams struct {
	Year   int
	Month0 int // zero-based
	Query  string
}

func parseGridParams(r *http.Request, now time.Time) gridParams {
	p := gridParams{
		Year:   now.UTC().Year(),
		Month0: int(now.UTC().Month()) - 1,
		Query:  r.FormValue("q"),
	}
	if y, err := strconv.Atoi(r.FormValue("y")); err == nil {
		p.Year = y
	}
	if m, err := strconv.Atoi(r.FormValue("m")); err == nil {
		p.Month0 = m
	}
	return p
}

func (p gridParams) url() string {
	q := url.Values{}
	q.Set("y", strconv.Itoa(p.Year))
	q.Set("m", strconv.Itoa(p.Month0))
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	return "/?" + q.Encode()
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p := parseGridParams(r, time.Now())

	s.mu.Lock()
	view := buildGrid(s.doc, &s.state, buildMonth(p.Year, p.Month0, time.Now()), p.Query, s.cfg.ShowGhosts)
	s.mu.Unlock()

	s.views.RenderPage(w, ViewData{
		Title:           view.Month.Label,
		ContentTemplate: "grid",
		User:            actor(r),
		Grid:            view,
	})
}

// actor names the authenticated user for display and logging; empty on an
// ungated install.
func actor(r *http.Request) string {
	if user, ok := CurrentUser(r.Context()); ok {
		return user.Name
	}
	return ""
}

// renderGridError re-renders the grid with a validation message. The
// rejected operation has not touched the document.
func (s *Server) renderGridError(w http.ResponseWriter, p gridParams, opErr error) {
	s.mu.Lock()
	view := buildGrid(s.doc, &s.state, buildMonth(p.Year, p.Month0, time.Now()), p.Query, s.cfg.ShowGhosts)
	s.mu.Unlock()
	view.Error = validationMessage(opErr)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.views.RenderPage(w, ViewData{
		Title:           view.Month.Label,
		ContentTemplate: "grid",
		Grid:            view,
	})
}

func (s *Server) logMutation(r *http.Request) {
	slog.Debug("document saved", "path", r.URL.Path, "user", actor(r))
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, journal.ErrEmptyName):
		return "Name must not be empty."
	case errors.Is(err, journal.ErrNameTaken):
		return "That name is already in use."
	case errors.Is(err, journal.ErrNotFound):
		return "The item no longer exists."
	}
	return err.Error()
}

// mutate runs one reconciler operation and persists the whole document
// before redirecting back to the grid. A validation rejection re-renders
// the page instead; nothing is persisted.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(*journal.Document) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := parseGridParams(r, time.Now())

	s.mu.Lock()
	if err := op(s.doc); err != nil {
		s.mu.Unlock()
		if errors.Is(err, journal.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.renderGridError(w, p, err)
		return
	}
	err := s.store.Save(r.Context(), s.doc)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logMutation(r)
	http.Redirect(w, r, p.url(), http.StatusSeeOther)
}

func (s *Server) handleAddTopic(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(doc *journal.Document) error {
		_, err := doc.AddTopic(r.Form.Get("name"))
		return err
	})
}

// handleTopics routes POST /topics/{id}/{action}.
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/topics/")
	id, action, ok := strings.Cut(strings.TrimSuffix(rest, "/"), "/")
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}
	switch action {
	case "archive":
		s.mutate(w, r, func(doc *journal.Document) error { return doc.ArchiveTopic(id) })
	case "unarchive":
		s.mutate(w, r, func(doc *journal.Document) error { return doc.UnarchiveTopic(id) })
	case "delete":
		s.mutate(w, r, func(doc *journal.Document) error { return doc.DeleteTopic(id) })
	case "unpin":
		s.mutate(w, r, func(doc *journal.Document) error { return doc.UnpinTopic(id) })
	case "rename":
		s.mutate(w, r, func(doc *journal.Document) error {
			return doc.RenameTopic(id, r.Form.Get("name"))
		})
	default:
		http.NotFound(w, r)
	}
}

// handleDays routes POST /days/{date}/cells/add and
// POST /days/{date}/cells/{id}/{action}.
func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/days/")
	date, rest, ok := strings.Cut(rest, "/")
	if !ok || !validDateKey(date) {
		http.NotFound(w, r)
		return
	}
	rest = strings.TrimSuffix(rest, "/")
	if rest == "cells/add" {
		s.mutate(w, r, func(doc *journal.Document) error {
			_, err := doc.AddFreeCell(date, r.Form.Get("name"))
			return err
		})
		return
	}
	rest, found := strings.CutPrefix(rest, "cells/")
	if !found {
		http.NotFound(w, r)
		return
	}
	id, action, ok := strings.Cut(rest, "/")
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}
	switch action {
	case "rename":
		s.mutate(w, r, func(doc *journal.Document) error {
			return doc.RenameFreeCell(date, id, r.Form.Get("name"))
		})
	case "delete":
		s.mutate(w, r, func(doc *journal.Document) error {
			return doc.DeleteFreeCell(date, id)
		})
	case "promote":
		s.mutate(w, r, func(doc *journal.Document) error {
			name := strings.TrimSpace(r.Form.Get("name"))
			if name == "" {
				// Default to the cell's own name; the form only supplies
				// one after a collision prompt.
				if e := doc.Entries[date]; e != nil {
					for _, fc := range e.Free {
						if fc.ID == id {
							name = fc.Name
							break
						}
					}
				}
			}
			_, err := doc.PromoteFreeCell(date, id, name)
			return err
		})
	default:
		http.NotFound(w, r)
	}
}

// handleEditOpen activates an edit session for one cell. If another cell
// is already editing it is committed first, using the draft the form
// carried for it: switching cells saves, it never discards.
func (s *Server) handleEditOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := parseGridParams(r, time.Now())
	kind := journal.TargetKind(r.Form.Get("kind"))
	date := r.Form.Get("date")
	id := r.Form.Get("id")
	if (kind != journal.TargetPinned && kind != journal.TargetFree) || !validDateKey(date) || id == "" {
		http.Error(w, "invalid edit target", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.state.Active != nil {
		if _, ok := r.Form["active_draft"]; ok {
			s.state.Active.Draft = r.Form.Get("active_draft")
		}
	}

	current, err := cellText(s.doc, kind, date, id)
	if err != nil {
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	}

	prev := s.state.Begin(journal.EditSession{Kind: kind, DateKey: date, ID: id, Draft: current})
	if prev != nil {
		if err := applySession(s.doc, *prev); err == nil {
			if err := s.store.Save(r.Context(), s.doc); err != nil {
				s.mu.Unlock()
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}
	s.mu.Unlock()

	http.Redirect(w, r, p.url(), http.StatusSeeOther)
}

func (s *Server) handleEditSave(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r, true)
}

func (s *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r, false)
}

// endSession closes the active edit session. Commit writes the draft
// through and persists; cancel reverts to the last-saved text.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, commit bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := parseGridParams(r, time.Now())

	s.mu.Lock()
	if commit && s.state.Active != nil {
		if _, ok := r.Form["draft"]; ok {
			s.state.Active.Draft = r.Form.Get("draft")
		}
	}
	sess, doCommit := s.state.End(commit)
	var saveErr error
	if doCommit {
		if err := applySession(s.doc, sess); err == nil {
			saveErr = s.store.Save(r.Context(), s.doc)
		}
	}
	s.mu.Unlock()

	if saveErr != nil {
		http.Error(w, saveErr.Error(), http.StatusInternalServerError)
		return
	}
	if doCommit {
		s.logMutation(r)
	}
	http.Redirect(w, r, p.url(), http.StatusSeeOther)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	htmlStr, err := markdown.Render(r.Form.Get("content"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.views.RenderTemplate(w, "preview", ViewData{RenderedHTML: template.HTML(htmlStr)})
}

func cellText(doc *journal.Document, kind journal.TargetKind, date, id string) (string, error) {
	switch kind {
	case journal.TargetPinned:
		// Ghost cells of archived topics never accept edits.
		if t, ok := doc.Topic(id); !ok || t.Archived {
			return "", journal.ErrNotFound
		}
		if e := doc.Entries[date]; e != nil {
			return e.Pinned[id], nil
		}
		return "", nil
	case journal.TargetFree:
		e := doc.Entries[date]
		if e == nil {
			return "", journal.ErrNotFound
		}
		for _, fc := range e.Free {
			if fc.ID == id {
				return fc.Text, nil
			}
		}
		return "", journal.ErrNotFound
	}
	return "", fmt.Errorf("unknown target kind %q", kind)
}

func applySession(doc *journal.Document, sess journal.EditSession) error {
	switch sess.Kind {
	case journal.TargetFree:
		return doc.SetFreeCellText(sess.DateKey, sess.ID, sess.Draft)
	default:
		return doc.SetPinnedText(sess.DateKey, sess.ID, sess.Draft)
	}
}

func validDateKey(s string) bool {
	_, err := time.Parse(journal.DateKeyLayout, s)
	return err == nil
}

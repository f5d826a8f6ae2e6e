// Package web serves the journaling grid: a calendar month of day rows
// crossed with pinned topic columns and ad-hoc free cells.
package web

import (
	"net/http"
	"sync"

	"daygrid/internal/config"
	"daygrid/internal/journal"
	"daygrid/internal/store"
)

// BuildVersion is stamped by the build; empty means a dev build.
var BuildVersion string

type Server struct {
	cfg   config.Config
	store *store.Store
	mux   *http.ServeMux
	views *Templates
	auth  *Auth

	// mu guards doc and state. Every mutation holds it across the
	// reconcile and the full-document save, so persistence is
	// single-writer by construction.
	mu    sync.Mutex
	doc   *journal.Document
	state journal.AppState
}

func NewServer(cfg config.Config, st *store.Store, doc *journal.Document) (*Server, error) {
	auth, err := newAuth(cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:   cfg,
		store: st,
		mux:   http.NewServeMux(),
		views: MustParseTemplates(),
		auth:  auth,
		doc:   doc,
	}
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	if s.auth != nil {
		return s.auth.Middleware(s.mux)
	}
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleGrid)
	s.mux.HandleFunc("/topics/add", s.handleAddTopic)
	s.mux.HandleFunc("/topics/", s.handleTopics)
	s.mux.HandleFunc("/days/", s.handleDays)
	s.mux.HandleFunc("/edit/open", s.handleEditOpen)
	s.mux.HandleFunc("/edit/save", s.handleEditSave)
	s.mux.HandleFunc("/edit/cancel", s.handleEditCancel)
	s.mux.HandleFunc("/preview", s.handlePreview)
}

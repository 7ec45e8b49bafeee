/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package dashboard serves the interactive analytics pages. Each browser
// gets a session that fetches the match data once and reuses it for every
// later interaction.
package dashboard

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/dashboard/templates"
	"github.com/mikeb26/rugbystats/rugby"
)

const SessionCookie = "rugby_session"

type Server struct {
	store *SessionStore
	now   func() time.Time
}

func NewServer(store *SessionStore) *Server {
	return &Server{
		store: store,
		now:   time.Now,
	}
}

// Routes registers the dashboard handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/charts/championships.png", s.handleChart(
		(*analytics.Frame).ChampionshipsChart))
	mux.HandleFunc("/charts/matches-per-year.png", s.handleChart(
		(*analytics.Frame).MatchesPerYearChart))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess := s.store.Get(id)
	if sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Only GET allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.session(w, r)
	reload := r.URL.Query().Get("reload") != ""
	frame, err := sess.Frame(r.Context(), s.store, reload)
	if err != nil {
		log.Printf("dashboard.index: session %v: %v", sess.ID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, rugby.ErrFetch) {
			status = http.StatusBadGateway
		}
		templ.Handler(templates.ErrorPage(err.Error()),
			templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}

	sel := ParseSelections(r.URL.Query(), frame.HomeTeams(), frame.AwayTeams())
	data, err := BuildPage(frame, sel, s.now())
	if err != nil {
		log.Printf("dashboard.index: session %v: failed to build page: %v",
			sess.ID, err)
		templ.Handler(templates.ErrorPage(err.Error()),
			templ.WithStatus(http.StatusInternalServerError)).ServeHTTP(w, r)
		return
	}
	data.SessionID = sess.ID

	templ.Handler(templates.Page(data)).ServeHTTP(w, r)
}

func (s *Server) handleChart(render func(*analytics.Frame, io.Writer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// charts never start a session; a request without a live one
		// fetches into a throwaway session
		sess := &Session{}
		if c, err := r.Cookie(SessionCookie); err == nil {
			if live, ok := s.store.Lookup(c.Value); ok {
				sess = live
			}
		}
		frame, err := sess.Frame(r.Context(), s.store, false)
		if err != nil {
			log.Printf("dashboard.chart: session %v: %v", sess.ID, err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		var buf bytes.Buffer
		err = render(frame, &buf)
		if errors.Is(err, analytics.ErrNoData) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		} else if err != nil {
			log.Printf("dashboard.chart: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "private, max-age=60")
		w.Write(buf.Bytes())
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package dataservice republishes a backing match table as JSON.
package dataservice

import (
	"bytes"
	"log"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/mikeb26/rugbystats/rugby"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	source rugby.Source
}

func NewServer(source rugby.Source) *Server {
	return &Server{source: source}
}

func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/retrieve_data/", s.handleRetrieve)
	mux.HandleFunc("/retrieve_data", s.handleRetrieve)
	mux.HandleFunc("/healthz", s.handleHealth)
}

// handleRetrieve reads the whole backing table on every request.
func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/retrieve_data/" && r.URL.Path != "/retrieve_data" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Only GET allowed", http.StatusMethodNotAllowed)
		return
	}

	matches, stats, err := s.source.Load(r.Context())
	if err != nil {
		log.Printf("dataservice.retrieve: failed to load %v: %v", s.source, err)
		http.Error(w, "failed to read match data: "+err.Error(),
			http.StatusInternalServerError)
		return
	}
	if stats.FilledCells > 0 {
		log.Printf("dataservice.retrieve: %v: zero-filled %v empty cells across %v rows",
			s.source, stats.FilledCells, stats.Rows)
	}
	if matches == nil {
		matches = []rugby.Match{}
	}

	// encode fully before writing so a failure cannot leave a partial body
	var buf bytes.Buffer
	err = json.NewEncoder(&buf).Encode(rugby.Envelope{Partidos: matches})
	if err != nil {
		log.Printf("dataservice.retrieve: failed to encode: %v", err)
		http.Error(w, "failed to encode match data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write(buf.Bytes())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Status is the payload served at /status, refreshed once per turn. It is
// stored as atomic.Value the way Hub.statusJSON is in server/hub.go, so the
// HTTP handler never blocks on the turn goroutine.
type Status struct {
	Turn       int  `json:"turn"`
	NumPlayers int  `json:"numPlayers"`
	GameOver   bool `json:"gameOver"`
}

// Server wires the admin status endpoint and the spectator websocket feed
// behind a gorilla/mux router, with gorilla/handlers' access-log middleware
// wrapping every request the way server/http.go relies on ServeIndex/
// ServeSocket but through a router instead of manual path dispatch.
type Server struct {
	router     *mux.Router
	status     atomic.Value // Status
	spectators *spectatorHub
}

// NewServer builds a Server with its routes registered.
func NewServer() *Server {
	s := &Server{spectators: newSpectatorHub()}
	s.status.Store(Status{})

	r := mux.NewRouter()
	r.HandleFunc("/status", s.serveStatus).Methods(http.MethodGet)
	r.HandleFunc("/spectate", s.serveSpectate)
	s.router = r

	return s
}

// Handler returns the fully wrapped http.Handler (router + access logging +
// permissive CORS for the read-only spectator feed). logWriter receives one
// combined-log-format line per request (os.Stdout in production).
func (s *Server) Handler(logWriter io.Writer) http.Handler {
	cors := handlers.CORS(handlers.AllowedOrigins([]string{"*"}), handlers.AllowedMethods([]string{"GET"}))
	return handlers.CombinedLoggingHandler(logWriter, cors(s.router))
}

// SetStatus updates the status payload served at /status.
func (s *Server) SetStatus(status Status) {
	s.status.Store(status)
}

// Broadcast pushes frame to every connected spectator.
func (s *Server) Broadcast(frame WireFrame) {
	s.spectators.broadcast(frame)
}

func (s *Server) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status, _ := s.status.Load().(Status)
	json.NewEncoder(w).Encode(status)
}

func (s *Server) serveSpectate(w http.ResponseWriter, r *http.Request) {
	s.spectators.serve(w, r)
}

// Package server exposes a live dashboard over the running load test's
// collector, adapted from the teacher's perf-test server. The teacher's
// version orchestrated remote test runs over HTTP (start/stop/history);
// here the CLI always drives the one run directly, so this server is
// read-only: a status endpoint and a websocket broadcasting live stats.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/core-banking/loadtest/internal/metrics"
)

type Server struct {
	port      int
	router    *mux.Router
	upgrader  websocket.Upgrader
	collector *metrics.Collector

	wsClientsMu sync.RWMutex
	wsClients   map[*websocket.Conn]bool
}

// New builds a dashboard server over collector. The collector is the
// observer of the engine the executor drives, so every broadcast tick sees
// live numbers.
func New(collector *metrics.Collector, port int) *Server {
	s := &Server{
		port:      port,
		router:    mux.NewRouter(),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		collector: collector,
		wsClients: make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/ws/stats", s.handleWebSocket)
}

// Start runs the HTTP server and the stats broadcaster until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	go s.broadcastStats(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Printf("load test dashboard listening on http://localhost:%d", s.port)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.collector.GetStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.wsClientsMu.Lock()
	s.wsClients[conn] = true
	s.wsClientsMu.Unlock()

	defer func() {
		s.wsClientsMu.Lock()
		delete(s.wsClients, conn)
		s.wsClientsMu.Unlock()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) broadcastStats(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := s.collector.GetStats()

			s.wsClientsMu.RLock()
			for client := range s.wsClients {
				if err := client.WriteJSON(stats); err != nil {
					client.Close()
				}
			}
			s.wsClientsMu.RUnlock()
		}
	}
}

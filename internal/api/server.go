// Package api exposes a running simulator over HTTP and a websocket
// stream, for the snapshot/viewer contract in spec.md: external
// consumers read state, they never mutate it. The simulator itself
// stays single-threaded; the server owns a mutex around every call
// into it so the stepping goroutine and the request handlers never
// race.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/stickysnack/ev-fleet-sim/internal/sim"
	"github.com/stickysnack/ev-fleet-sim/internal/snapshot"
)

const (
	writeWait      = 2 * time.Second
	streamInterval = 500 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server drives a simulator to completion in the background while
// serving its state to HTTP and websocket clients.
type Server struct {
	addr string

	mu  sync.Mutex
	sim *sim.Simulator
}

// NewServer wraps an already-constructed simulator.
func NewServer(addr string, s *sim.Simulator) *Server {
	return &Server{addr: addr, sim: s}
}

// Run steps the wrapped simulator in a background goroutine, one event
// per locked Step call with no pacing, until the run terminates, and
// serves HTTP until the listener returns an error.
func (srv *Server) Run() error {
	go srv.drive()

	r := mux.NewRouter()
	r.HandleFunc("/snapshot", srv.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/stats", srv.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/ws", srv.handleWebsocket)

	if err := http.ListenAndServe(srv.addr, r); err != nil {
		return fmt.Errorf("api: serve: %w", err)
	}
	return nil
}

func (srv *Server) drive() {
	for {
		srv.mu.Lock()
		more := srv.sim.Step()
		srv.mu.Unlock()
		if !more {
			return
		}
	}
}

func (srv *Server) snapshotNow() snapshot.Snapshot {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return snapshot.Of(srv.sim)
}

func (srv *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, srv.snapshotNow())
}

func (srv *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	final := srv.sim.Stats()
	srv.mu.Unlock()
	writeJSON(w, final)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleWebsocket streams a fresh snapshot to the client at a fixed
// cadence until the connection closes.
func (srv *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := ws.WriteJSON(srv.snapshotNow()); err != nil {
			return
		}
	}
}

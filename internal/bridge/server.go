// Package bridge exposes the cell linking handlers to a JupyterLab frontend
// over a websocket, plus a small HTTP API for link state and history.
package bridge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/config"
	"github.com/chapyter/cellsync/internal/journal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The frontend connects from the JupyterLab origin
	},
}

// Server routes frontend execution events through the orchestrator.
type Server struct {
	cfg     *config.Config
	orch    *cellsync.Orchestrator
	journal *journal.Journal // nil when the journal is disabled
	debug   bool

	mu    sync.RWMutex
	links map[string]map[string]cellsync.LinkEvent // notebook -> trigger id -> latest event

	httpServer *http.Server
}

// NewServer wires an orchestrator to the given configuration. The journal may
// be nil. The server records every link event itself so /api/links can serve
// live pair state without a journal.
func NewServer(cfg *config.Config, orch *cellsync.Orchestrator, jrnl *journal.Journal) *Server {
	s := &Server{
		cfg:     cfg,
		orch:    orch,
		journal: jrnl,
		debug:   cfg.Server.Debug,
		links:   make(map[string]map[string]cellsync.LinkEvent),
	}
	orch.Recorder = s
	return s
}

// RecordLink implements cellsync.LinkRecorder. Events update the in-memory
// pair state and are forwarded to the journal when one is attached.
func (s *Server) RecordLink(ev cellsync.LinkEvent) {
	s.mu.Lock()
	byTrigger, ok := s.links[ev.Notebook]
	if !ok {
		byTrigger = make(map[string]cellsync.LinkEvent)
		s.links[ev.Notebook] = byTrigger
	}
	if ev.Action == cellsync.LinkLinked {
		byTrigger[ev.TriggerID] = ev
	} else {
		delete(byTrigger, ev.TriggerID)
	}
	s.mu.Unlock()

	if s.journal != nil {
		s.journal.RecordLink(ev)
	}
}

// Links returns the live linked pairs for a notebook. An empty notebook
// matches all notebooks.
func (s *Server) Links(notebook string) []cellsync.LinkEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []cellsync.LinkEvent
	for nb, byTrigger := range s.links {
		if notebook != "" && nb != notebook {
			continue
		}
		for _, ev := range byTrigger {
			out = append(out, ev)
		}
	}
	return out
}

// handleWS upgrades the connection and routes envelopes until the client
// disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Bridge] Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	if s.debug {
		log.Printf("[Bridge] Client connected: %s", conn.RemoteAddr())
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Bridge] Unexpected close: %v", err)
			}
			break
		}

		reply := s.handleMessage(message)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[Bridge] Failed to write reply: %v", err)
			break
		}
	}

	if s.debug {
		log.Printf("[Bridge] Client disconnected: %s", conn.RemoteAddr())
	}
}

// handleMessage decodes one envelope, runs the matching handler, and returns
// the commands the frontend should apply.
func (s *Server) handleMessage(message []byte) Reply {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return Reply{Type: ReplyError, Error: "invalid message: " + err.Error()}
	}

	nb, cell, err := BuildNotebook(&env)
	if err != nil {
		return Reply{Type: ReplyError, Error: err.Error()}
	}

	switch env.Type {
	case EventScheduled:
		s.orch.HandleScheduled(nb, cell)
	case EventExecuted:
		s.orch.HandleExecuted(nb, cell, env.Success)
	default:
		return Reply{Type: ReplyError, Error: "unknown event type: " + env.Type}
	}

	commands := nb.DrainCommands()
	if s.debug {
		log.Printf("[Bridge] %s %s/%s -> %d command(s)", env.Type, env.Notebook, env.CellID, len(commands))
	}
	return Reply{Type: ReplyCommands, Commands: commands}
}

// ListenAndServe starts the HTTP server on the configured address. It blocks
// until the server stops.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.Addr(),
		Handler: s.Handler(),
	}
	log.Printf("[Bridge] Listening on %s", s.cfg.Server.Addr())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops a server started with ListenAndServe.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

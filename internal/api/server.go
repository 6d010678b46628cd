// Package api serves a read-only view of the window manager state over
// HTTP, plus a websocket stream of change events.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/manager"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/gorilla/mux"
)

// Source is the state the API exposes. *manager.Manager implements it.
type Source interface {
	Snapshot() *manager.Snapshot
	Subscribe(buffer int) (<-chan manager.Event, func())
	Config() *config.Config
	RequestReload()
}

// Status summarises the running manager.
type Status struct {
	Generation uint64    `json:"generation"`
	Desktop    int       `json:"desktop"`
	Desktops   int       `json:"desktops"`
	Clients    int       `json:"clients"`
	Docks      int       `json:"docks"`
	Screens    int       `json:"screens"`
	Struts     int       `json:"struts"`
	StartedAt  time.Time `json:"started_at"`
	Uptime     string    `json:"uptime"`
}

// Server is the inspection API.
type Server struct {
	server  *http.Server
	router  *mux.Router
	source  Source
	logger  *slog.Logger
	started time.Time

	mu         sync.Mutex
	listener   net.Listener
	socketPath string
}

// NewServer builds the router. Nothing listens until Start.
func NewServer(source Source, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:  mux.NewRouter(),
		source:  source,
		logger:  logger,
		started: time.Now(),
	}
	s.routes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/status/", s.handleStatus).Methods("GET")
	r.HandleFunc("/clients/", s.handleClients).Methods("GET")
	r.HandleFunc("/clients/{id:[0-9]+}", s.handleClient).Methods("GET")
	r.HandleFunc("/screens/", s.handleScreens).Methods("GET")
	r.HandleFunc("/struts/", s.handleStruts).Methods("GET")
	r.HandleFunc("/freearea/", s.handleFreeAreas).Methods("GET")
	r.HandleFunc("/freearea/{screen:[0-9]+}", s.handleFreeArea).Methods("GET")
	r.HandleFunc("/config/", s.handleConfig).Methods("GET")
	r.HandleFunc("/reload", s.handleReload).Methods("POST")
	r.HandleFunc("/events", makeWSHandler(s.logger, s.streamEvents)).Methods("GET")
	r.PathPrefix("/").Handler(http.NotFoundHandler())
}

// Start listens on addr, or on the unix socket at socketPath when addr is
// empty, and serves in the background.
func (s *Server) Start(addr, socketPath string) error {
	var (
		ln  net.Listener
		err error
	)
	if addr != "" {
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
	} else {
		// A stale socket from a previous run blocks the bind.
		os.Remove(socketPath)
		ln, err = net.Listen("unix", socketPath)
		if err != nil {
			return fmt.Errorf("failed to create API socket: %w", err)
		}
		if err := os.Chmod(socketPath, 0600); err != nil {
			ln.Close()
			return fmt.Errorf("failed to set socket permissions: %w", err)
		}
	}

	s.mu.Lock()
	s.listener = ln
	if addr == "" {
		s.socketPath = socketPath
	}
	s.mu.Unlock()

	s.logger.Info("api listening", "addr", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting requests and waits for in-flight ones. Open
// event streams end when ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.mu.Lock()
	path := s.socketPath
	s.mu.Unlock()
	if path != "" {
		os.Remove(path)
	}
	return err
}

func jsonResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, data any) {
	logger.Debug("api request", "status", status, "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to write api response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) items(w http.ResponseWriter, r *http.Request, items any) {
	jsonResponse(w, r, s.logger, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) item(w http.ResponseWriter, r *http.Request, item any) {
	jsonResponse(w, r, s.logger, http.StatusOK, map[string]any{"item": item})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	jsonResponse(w, r, s.logger, status, map[string]any{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	s.item(w, r, Status{
		Generation: snap.Generation,
		Desktop:    snap.Desktop,
		Desktops:   snap.Desktops,
		Clients:    len(snap.Clients),
		Docks:      len(snap.Docks),
		Screens:    len(snap.Screens),
		Struts:     len(snap.Struts),
		StartedAt:  s.started,
		Uptime:     time.Since(s.started).Truncate(time.Second).String(),
	})
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	s.items(w, r, s.source.Snapshot().Clients)
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		s.fail(w, r, http.StatusNotFound, "no such client")
		return
	}
	c, ok := s.source.Snapshot().Client(wm.ClientID(id))
	if !ok {
		s.fail(w, r, http.StatusNotFound, "no such client")
		return
	}
	s.item(w, r, c)
}

func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	s.items(w, r, s.source.Snapshot().Screens)
}

func (s *Server) handleStruts(w http.ResponseWriter, r *http.Request) {
	s.items(w, r, s.source.Snapshot().Struts)
}

func (s *Server) handleFreeAreas(w http.ResponseWriter, r *http.Request) {
	s.items(w, r, s.source.Snapshot().FreeAreas)
}

func (s *Server) handleFreeArea(w http.ResponseWriter, r *http.Request) {
	screen, err := strconv.Atoi(mux.Vars(r)["screen"])
	if err != nil {
		s.fail(w, r, http.StatusNotFound, "no such screen")
		return
	}
	fa, ok := s.source.Snapshot().FreeArea(screen)
	if !ok {
		s.fail(w, r, http.StatusNotFound, "no such screen")
		return
	}
	s.item(w, r, fa)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.Config().Marshal()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("reload requested over api")
	s.source.RequestReload()
	jsonResponse(w, r, s.logger, http.StatusAccepted, map[string]any{"status": "reload requested"})
}

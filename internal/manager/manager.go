// Package manager owns the window manager state and the single event
// dispatch path that mutates it.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/hotkeys"
	"github.com/1broseidon/floatwm/internal/interact"
	"github.com/1broseidon/floatwm/internal/placement"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Name is advertised through _NET_SUPPORTING_WM_CHECK.
const Name = "floatwm"

// Options configures a Manager.
type Options struct {
	Conn   *x11.Connection
	Config *config.Config
	// ConfigPath is reloaded on SIGHUP. Empty means the default location.
	ConfigPath string
	Logger     *slog.Logger
	// ReconcileInterval is how often the window tree is compared with the
	// managed set. Zero uses DefaultReconcileInterval.
	ReconcileInterval time.Duration
}

// Manager manages top-level windows. Everything except Snapshot, Subscribe,
// Config and the Request* methods must run on the event-dispatch thread.
type Manager struct {
	conn     *x11.Connection
	backend  *platform.LinuxBackend
	overlay  *x11.Overlay
	bindings *hotkeys.Handler
	logger   *slog.Logger

	cfg        atomic.Pointer[config.Config]
	configPath string
	reconcile  time.Duration

	model  *wm.Model
	docks  map[wm.ClientID]*wm.Client
	struts *strut.Registry
	solver *placement.Solver
	ctrl   *interact.Controller

	// pendingUnmaps counts unmaps the manager issued itself, so that the
	// resulting UnmapNotify does not unmanage the client.
	pendingUnmaps map[wm.ClientID]int
	// restore holds the geometry of fullscreen clients.
	restore map[wm.ClientID]geometry.Rect

	snapshot   atomic.Pointer[Snapshot]
	generation uint64
	hub        *Hub
}

// New creates a manager. Nothing is sent to the X server until Start.
func New(opts Options) (*Manager, error) {
	if opts.Conn == nil {
		return nil, fmt.Errorf("manager needs an X connection")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.ReconcileInterval
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}

	m := &Manager{
		conn:          opts.Conn,
		backend:       platform.NewLinuxBackend(opts.Conn, logger),
		logger:        logger,
		configPath:    opts.ConfigPath,
		reconcile:     interval,
		model:         wm.NewModel(),
		docks:         make(map[wm.ClientID]*wm.Client),
		pendingUnmaps: make(map[wm.ClientID]int),
		restore:       make(map[wm.ClientID]geometry.Rect),
		hub:           NewHub(logger),
	}
	m.cfg.Store(cfg)
	m.model.Desktops = cfg.Desktops

	m.struts = strut.NewRegistry(owners{m}, 0, 0)
	m.solver = placement.NewSolver(m.model, m.struts, cfg.Metrics())
	m.solver.SetPointer(m.backend.PointerPosition)
	m.overlay = x11.NewOverlay(opts.Conn, cfg.OutlineColor)
	m.ctrl = interact.New(interact.Options{
		Backend:  m.backend,
		Feedback: m.overlay,
		World:    m.model,
		Screens:  func() []wm.Screen { return m.model.Screens },
		Placer:   m.solver,
		Logger:   logger.With("component", "interact"),
		OnGeometry: func(c *wm.Client) {
			m.changed(EventGeometry, c)
		},
	})
	m.publish()
	return m, nil
}

// owners resolves strut owners among docks first, then clients.
type owners struct{ m *Manager }

func (o owners) Lookup(id wm.ClientID) (*wm.Client, bool) {
	if d, ok := o.m.docks[id]; ok {
		return d, true
	}
	return o.m.model.Lookup(id)
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config { return m.cfg.Load() }

// Snapshot returns the latest published state.
func (m *Manager) Snapshot() *Snapshot { return m.snapshot.Load() }

// Subscribe streams change events. See Hub.Subscribe.
func (m *Manager) Subscribe(buffer int) (<-chan Event, func()) {
	return m.hub.Subscribe(buffer)
}

// Start takes over the display: it becomes the window manager, reads the
// screen layout, installs the event handlers and adopts existing windows.
func (m *Manager) Start() error {
	if err := m.conn.BecomeWM(Name); err != nil {
		return err
	}

	width, height, err := m.conn.RootSize()
	if err != nil {
		return err
	}
	m.struts.SetRootSize(width, height)
	if err := m.refreshScreens(); err != nil {
		return err
	}
	if err := m.conn.WatchScreens(m.onScreensChanged); err != nil {
		m.logger.Warn("screen changes will not be tracked", "error", err)
	}

	if err := m.connectRoot(); err != nil {
		return err
	}
	if err := m.bindButtons(); err != nil {
		return err
	}
	m.bindKeys()

	m.adoptExisting()
	m.publishDesktops()
	m.publishClientList()
	m.publish()

	m.logger.Info("window manager started",
		"screens", len(m.model.Screens),
		"clients", m.model.Stack.Len(),
		"docks", len(m.docks),
	)
	return nil
}

// Run dispatches events until ctx is cancelled or Quit is requested.
func (m *Manager) Run(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-loopCtx.Done()
		if ctx.Err() != nil {
			m.RequestQuit()
		}
	}()
	go m.runReconciler(loopCtx)

	m.conn.EventLoop()
	m.logger.Info("event loop stopped")
}

// RequestReload asks the dispatch thread to reload the configuration.
func (m *Manager) RequestReload() {
	if err := m.conn.SendWake(x11.WakeReload); err != nil {
		m.logger.Warn("failed to request reload", "error", err)
	}
}

// RequestQuit asks the dispatch thread to shut down.
func (m *Manager) RequestQuit() {
	if err := m.conn.SendWake(x11.WakeQuit); err != nil {
		m.logger.Warn("failed to request quit", "error", err)
	}
}

func (m *Manager) onWake(w x11.Wake) {
	switch w {
	case x11.WakeReload:
		if err := m.reload(); err != nil {
			m.logger.Error("config reload failed", "error", err)
		}
	case x11.WakeQuit:
		m.shutdown()
	case x11.WakeReconcile:
		m.reconcileNow()
	default:
		m.logger.Debug("unknown wake request", "value", uint32(w))
	}
}

func (m *Manager) reload() error {
	res, err := m.loadConfig()
	if err != nil {
		return err
	}
	cfg := res.Config
	m.cfg.Store(cfg)

	m.solver.SetMetrics(cfg.Metrics())
	m.overlay.SetColor(cfg.OutlineColor)

	m.model.Desktops = cfg.Desktops
	if m.model.Desktop >= cfg.Desktops {
		m.switchDesktop(cfg.Desktops - 1)
	}
	m.bindings.Reset()
	m.bindKeys()

	m.forEachClient(func(c *wm.Client) {
		if c.Desktop >= cfg.Desktops {
			c.Desktop = cfg.Desktops - 1
			m.writeDesktop(c)
		}
		m.refit(c)
	})
	m.publishDesktops()

	m.logger.Info("config reloaded", "files", len(res.Files))
	m.changed(EventConfig, nil)
	return nil
}

func (m *Manager) loadConfig() (*config.LoadResult, error) {
	if m.configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(m.configPath)
}

// shutdown ends any session, keeping committed geometry, and stops the
// event loop. Clients are left mapped where they are.
func (m *Manager) shutdown() {
	m.logger.Info("shutting down")
	m.ctrl.Shutdown()
	m.overlay.Close()
	m.conn.Quit()
}

func (m *Manager) settings() interact.Settings {
	return m.Config().Settings()
}

func (m *Manager) metrics() geometry.Metrics {
	return m.Config().Metrics()
}

// lookup finds a managed client or dock by window.
func (m *Manager) lookup(win xproto.Window) (*wm.Client, bool) {
	return owners{m}.Lookup(wm.ClientID(win))
}

func (m *Manager) forEachClient(visit func(*wm.Client)) {
	for _, c := range m.model.Stack.Clients() {
		visit(c)
	}
}

func (m *Manager) configure(c *wm.Client) {
	if err := m.backend.Configure(c, c.Insets(m.metrics())); err != nil {
		m.logger.Warn("failed to configure client", "client", c.ID, "error", err)
	}
}

func (m *Manager) writeState(c *wm.Client) {
	if err := m.backend.WriteState(c); err != nil {
		m.logger.Warn("failed to write client state", "client", c.ID, "error", err)
	}
}

func (m *Manager) writeDesktop(c *wm.Client) {
	err := m.conn.SetWindowDesktop(xproto.Window(c.ID), c.Desktop, c.State.Has(geometry.StateSticky))
	if err != nil {
		m.logger.Warn("failed to write client desktop", "client", c.ID, "error", err)
	}
}

func (m *Manager) publishDesktops() {
	if err := m.conn.PublishDesktops(m.model.Desktops, m.model.Desktop); err != nil {
		m.logger.Warn("failed to publish desktops", "error", err)
	}
}

func (m *Manager) publishClientList() {
	var wins []xproto.Window
	m.model.Stack.Each(func(c *wm.Client) {
		wins = append(wins, xproto.Window(c.ID))
	})
	if err := m.conn.PublishClients(wins); err != nil {
		m.logger.Warn("failed to publish client list", "error", err)
	}
}

// changed publishes a new snapshot and broadcasts the event.
func (m *Manager) changed(t EventType, c *wm.Client) {
	m.publish()
	ev := Event{Type: t, Desktop: m.model.Desktop}
	if c != nil {
		cp := *c
		ev.Client = &cp
	}
	m.hub.Publish(ev)
}

func (m *Manager) publish() {
	m.generation++
	m.snapshot.Store(buildSnapshot(m.generation, m.model, m.docks, m.struts, m.solver))
}

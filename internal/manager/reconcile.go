package manager

import (
	"context"
	"sort"
	"time"

	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// DefaultReconcileInterval is used when Options.ReconcileInterval is zero.
const DefaultReconcileInterval = 10 * time.Second

// runReconciler asks the dispatch thread for a reconciliation pass on every
// tick. Blocks until ctx is cancelled.
func (m *Manager) runReconciler(ctx context.Context) {
	ticker := time.NewTicker(m.reconcile)
	defer ticker.Stop()

	m.logger.Debug("reconciler started", "interval", m.reconcile)

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("reconciler stopped")
			return
		case <-ticker.C:
			if err := m.conn.SendWake(x11.WakeReconcile); err != nil {
				m.logger.Warn("reconciler: failed to wake dispatch thread", "error", err)
			}
		}
	}
}

// reconcileNow compares the managed set with the window tree. Windows that
// vanished without a DestroyNotify are dropped and viewable windows that
// were missed are adopted.
func (m *Manager) reconcileNow() {
	defer func() {
		if err := recover(); err != nil {
			m.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	children, err := m.conn.Children()
	if err != nil {
		m.logger.Error("reconciler: failed to list windows", "error", err)
		return
	}

	for _, id := range vanished(m.managedIDs(), children) {
		m.logger.Info("reconciler: window vanished", "window", id)
		m.unmanage(id, false)
	}

	for _, win := range children {
		if _, ok := m.lookup(win); ok {
			continue
		}
		if win == m.conn.CheckWindow() || m.conn.OverrideRedirect(win) || !m.conn.Viewable(win) {
			continue
		}
		m.logger.Info("reconciler: adopting missed window", "window", win)
		m.manage(win, true)
	}
}

func (m *Manager) managedIDs() []wm.ClientID {
	ids := make([]wm.ClientID, 0, m.model.Stack.Len()+len(m.docks))
	m.model.Stack.Each(func(c *wm.Client) { ids = append(ids, c.ID) })
	for id := range m.docks {
		ids = append(ids, id)
	}
	return ids
}

// vanished returns the managed ids missing from present, in ascending order.
func vanished(managed []wm.ClientID, present []xproto.Window) []wm.ClientID {
	seen := make(map[wm.ClientID]bool, len(present))
	for _, w := range present {
		seen[wm.ClientID(w)] = true
	}
	var gone []wm.ClientID
	for _, id := range managed {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	return gone
}

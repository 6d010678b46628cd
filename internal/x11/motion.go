package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// CompressMotion returns the newest queued motion event that continues ev
// and drops the older ones, so a slow redraw never lags behind the pointer.
func (c *Connection) CompressMotion(ev xevent.MotionNotifyEvent) xevent.MotionNotifyEvent {
	c.XUtil.Sync()
	xevent.Read(c.XUtil, false)

	last, drop := latestMotion(*ev.MotionNotifyEvent, xevent.Peek(c.XUtil))
	// Dequeue from the back so earlier indices stay valid.
	for i := len(drop) - 1; i >= 0; i-- {
		xevent.DequeueAt(c.XUtil, drop[i])
	}
	if len(drop) == 0 {
		return ev
	}
	return xevent.MotionNotifyEvent{MotionNotifyEvent: &last}
}

// latestMotion scans queue for motion events matching ev and returns the
// newest one with the ascending queue indices of every match.
func latestMotion(ev xproto.MotionNotifyEvent, queue []xgbutil.EventOrError) (xproto.MotionNotifyEvent, []int) {
	last := ev
	var drop []int
	for i, ee := range queue {
		if ee.Err != nil {
			continue
		}
		mn, ok := ee.Event.(xproto.MotionNotifyEvent)
		if !ok {
			continue
		}
		if mn.Event == ev.Event && mn.Root == ev.Root && mn.State == ev.State && mn.SameScreen == ev.SameScreen {
			last = mn
			drop = append(drop, i)
		}
	}
	return last, drop
}

package hotkeys

import (
	"sort"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestIgnoreMasks_AllLocks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)
	num := uint16(xproto.ModMask2)
	scroll := uint16(xproto.ModMask5)

	got := ignoreMasks(caps, num, scroll)
	if len(got) != 8 {
		t.Fatalf("expected 8 masks, got %v", got)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if got[0] != 0 {
		t.Fatalf("expected the empty mask first, got %v", got)
	}
	if got[len(got)-1] != caps|num|scroll {
		t.Fatalf("expected the full mask last, got %v", got)
	}
}

func TestIgnoreMasks_SkipsMissingAndDuplicateLocks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)

	got := ignoreMasks(caps, 0, caps)
	if len(got) != 2 || got[0] != 0 || got[1] != caps {
		t.Fatalf("expected [0 caps], got %v", got)
	}
}

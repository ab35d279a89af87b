package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooks(t *testing.T) {
	ctx := context.Background()

	var nh NoopNetworkHooks
	nh.OnMutation("add-node", 1, 0)
	nh.OnExport("db", 1, time.Millisecond)
	nh.OnUnknownModel("ghost")

	var hh NoopHistoryHooks
	hh.OnCommit(3)
	hh.OnNavigate("older", 1)

	var ch NoopCacheHooks
	ch.OnCacheHit(ctx, "svg")
	ch.OnCacheMiss(ctx, "svg")
	ch.OnCacheSet(ctx, "svg", 1024)

	var ah NoopAPIHooks
	ah.OnRequest(ctx, "GET", "/network", 200, time.Millisecond)
}

func TestGlobalRegistry(t *testing.T) {
	defer Reset()

	if _, ok := Network().(NoopNetworkHooks); !ok {
		t.Error("default network hooks should be NoopNetworkHooks")
	}
	if _, ok := History().(NoopHistoryHooks); !ok {
		t.Error("default history hooks should be NoopHistoryHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("default cache hooks should be NoopCacheHooks")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("default API hooks should be NoopAPIHooks")
	}

	SetNetworkHooks(&recordingNetworkHooks{})
	if _, ok := Network().(*recordingNetworkHooks); !ok {
		t.Error("network hooks not registered")
	}
	SetHistoryHooks(testHistoryHooks{})
	if _, ok := History().(testHistoryHooks); !ok {
		t.Error("history hooks not registered")
	}
	SetCacheHooks(testCacheHooks{})
	if _, ok := Cache().(testCacheHooks); !ok {
		t.Error("cache hooks not registered")
	}
	SetAPIHooks(testAPIHooks{})
	if _, ok := API().(testAPIHooks); !ok {
		t.Error("API hooks not registered")
	}

	Reset()
	if _, ok := Network().(NoopNetworkHooks); !ok {
		t.Error("Reset should restore NoopNetworkHooks")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("Reset should restore NoopAPIHooks")
	}
}

func TestSetNilIgnored(t *testing.T) {
	defer Reset()

	SetNetworkHooks(nil)
	SetHistoryHooks(nil)
	SetCacheHooks(nil)
	SetAPIHooks(nil)

	if Network() == nil || History() == nil || Cache() == nil || API() == nil {
		t.Error("setting nil hooks should keep the previous implementation")
	}
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	defer Reset()

	rec := &recordingNetworkHooks{}
	SetNetworkHooks(rec)
	Network().OnMutation("delete-node", 2, 1)
	Network().OnMutation("clean", 2, 1)

	if len(rec.ops) != 2 || rec.ops[0] != "delete-node" || rec.ops[1] != "clean" {
		t.Errorf("ops = %v", rec.ops)
	}
}

// Test implementations
type recordingNetworkHooks struct {
	NoopNetworkHooks
	ops []string
}

func (r *recordingNetworkHooks) OnMutation(op string, _, _ int) { r.ops = append(r.ops, op) }

type testHistoryHooks struct{ NoopHistoryHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testAPIHooks struct{ NoopAPIHooks }

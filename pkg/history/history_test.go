package history

import (
	"testing"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

func newTracked(t *testing.T, opts ...Option) (*History, *network.Network) {
	t.Helper()
	h := New(opts...)
	net := network.New(model.Default(), network.WithObserver(h))
	return h, net
}

func TestCommitOnEveryMutation(t *testing.T) {
	h, net := newTracked(t)
	a := net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	if _, err := net.AddConnection(network.ConnectionDescription{Source: 0, Target: 1}); err != nil {
		t.Fatal(err)
	}
	if err := a.SetSize(5); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 4 || h.Index() != 3 {
		t.Errorf("Len() = %d, Index() = %d, want 4, 3", h.Len(), h.Index())
	}
}

func TestNavigation(t *testing.T) {
	h, net := newTracked(t)
	for range 3 {
		net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	}

	tests := []struct {
		dir   Direction
		index int
		nodes int
	}{
		{Older, 1, 2},
		{Older, 0, 1},
		{Older, 0, 1},
		{Newer, 1, 2},
		{Newest, 2, 3},
		{Newer, 2, 3},
		{Oldest, 0, 1},
	}
	for _, tt := range tests {
		rev, err := h.Move(tt.dir)
		if err != nil {
			t.Fatalf("Move(%s): %v", tt.dir, err)
		}
		if h.Index() != tt.index || rev.NodeCount() != tt.nodes {
			t.Errorf("Move(%s): index %d with %d nodes, want %d with %d", tt.dir, h.Index(), rev.NodeCount(), tt.index, tt.nodes)
		}
	}
}

func TestRestoreDoesNotRecord(t *testing.T) {
	h, net := newTracked(t)
	net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})

	if err := h.Restore(Older, net); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if net.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", net.NodeCount())
	}
	if h.Len() != 2 || !h.CanRedo() || h.CanUndo() {
		t.Errorf("Len() = %d, CanRedo() = %v, CanUndo() = %v", h.Len(), h.CanRedo(), h.CanUndo())
	}

	// A new edit after undo drops the redo branch.
	net.AddNode(network.NodeDescription{Model: "multimeter"})
	if h.Len() != 2 || h.CanRedo() {
		t.Errorf("after edit: Len() = %d, CanRedo() = %v", h.Len(), h.CanRedo())
	}
}

func TestRestoreKeepsAddedWeight(t *testing.T) {
	reg := model.Default()
	if err := reg.Put(&model.Model{
		ID: "gap_junction", ElementType: model.ElementSynapse,
		Params: []model.ParamDefault{{ID: "delay", Value: 1}},
	}); err != nil {
		t.Fatal(err)
	}
	h := New()
	net := network.New(reg, network.WithObserver(h))
	src := net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	if _, err := net.AddConnection(network.ConnectionDescription{Source: 0, Target: 1, Synapse: "gap_junction"}); err != nil {
		t.Fatal(err)
	}
	if err := src.SetWeightPolarity(network.Inhibitory); err != nil {
		t.Fatal(err)
	}
	if err := net.Node(1).SetSize(3); err != nil {
		t.Fatal(err)
	}

	if err := h.Restore(Older, net); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := net.Connection(0).Weight(); got != -1 {
		t.Errorf("weight after undo = %v, want -1", got)
	}
	if got := net.Node(1).Size(); got != 1 {
		t.Errorf("size after undo = %d, want 1", got)
	}
}

func TestRevisionsAreIsolated(t *testing.T) {
	h, net := newTracked(t)
	n := net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	if err := n.SetParameter("V_th", -40); err != nil {
		t.Fatal(err)
	}

	rev, err := h.Older()
	if err != nil {
		t.Fatal(err)
	}
	if got := rev.Node(0).Parameter("V_th").Value(); got != -55 {
		t.Errorf("older V_th = %v, want -55", got)
	}
	if err := rev.Node(0).SetParameter("V_th", 0); err != nil {
		t.Fatal(err)
	}

	again, err := h.Oldest()
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Node(0).Parameter("V_th").Value(); got != -55 {
		t.Errorf("stored revision mutated: V_th = %v", got)
	}
}

func TestMaxRevisions(t *testing.T) {
	h, net := newTracked(t, WithMaxRevisions(3))
	for range 5 {
		net.AddNode(network.NodeDescription{Model: "iaf_psc_alpha"})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	oldest, err := h.Oldest()
	if err != nil {
		t.Fatal(err)
	}
	if oldest.NodeCount() != 3 {
		t.Errorf("oldest NodeCount() = %d, want 3", oldest.NodeCount())
	}
}

func TestEmptyHistory(t *testing.T) {
	h := New()
	if _, err := h.Older(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Older() error = %v, want NOT_FOUND", err)
	}
	if h.Index() != -1 || h.CanUndo() || h.CanRedo() {
		t.Error("empty history should have no cursor")
	}
}

func TestActivityHandler(t *testing.T) {
	var calls int
	h, net := newTracked(t, WithActivityHandler(func(*network.Network) { calls++ }))
	net.AddNode(network.NodeDescription{Model: "spike_recorder"})
	if calls != 1 || h.Len() != 1 {
		t.Errorf("calls = %d, Len() = %d", calls, h.Len())
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"oldest", "older", "newer", "newest"} {
		if _, err := ParseDirection(s); err != nil {
			t.Errorf("ParseDirection(%q): %v", s, err)
		}
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseDirection(sideways) error = %v", err)
	}
}

// Package history keeps the revision history of a network.
//
// A [History] is a [network.Observer]: registered with [network.WithObserver]
// it stores a clone of the network after every committed mutation. Moving
// through the history returns clones as well, so revisions are never shared
// with a live network. Restoring goes through [network.Network.Update], which
// does not notify, so a restore never records itself.
//
//	h := history.New(history.WithMaxRevisions(100))
//	net := network.New(reg, network.WithObserver(h))
//	h.Commit(net) // record the initial state
//	...
//	if err := h.Restore(history.Older, net); err != nil { ... }
package history

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/network"
	"github.com/matzehuels/nestgraph/pkg/observability"
)

// DefaultMaxRevisions bounds a history created without WithMaxRevisions.
const DefaultMaxRevisions = 50

// Direction names a move through the history.
type Direction string

// Directions.
const (
	Oldest Direction = "oldest"
	Older  Direction = "older"
	Newer  Direction = "newer"
	Newest Direction = "newest"
)

// ParseDirection converts a string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Oldest, Older, Newer, Newest:
		return d, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown history direction %q", s)
	}
}

// History is a bounded list of network revisions with a cursor. Committing
// while the cursor is not on the newest revision discards the newer ones.
// It is safe for concurrent use.
type History struct {
	mu        sync.Mutex
	revisions []*network.Network
	cursor    int
	max       int
	logger    *log.Logger
	onActive  func(*network.Network)
}

// Option configures a History.
type Option func(*History)

// WithMaxRevisions bounds the number of stored revisions. Values below 1 are
// ignored.
func WithMaxRevisions(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.max = n
		}
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithActivityHandler sets a callback for activity-graph notifications, which
// the history itself does not record.
func WithActivityHandler(fn func(*network.Network)) Option {
	return func(h *History) { h.onActive = fn }
}

// New returns an empty history.
func New(opts ...Option) *History {
	h := &History{
		cursor: -1,
		max:    DefaultMaxRevisions,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NetworkChanged records a revision.
func (h *History) NetworkChanged(n *network.Network) { h.Commit(n) }

// ActivityGraphChanged forwards to the activity handler, if any.
func (h *History) ActivityGraphChanged(n *network.Network) {
	if h.onActive != nil {
		h.onActive(n)
	}
}

// Commit stores a clone of n as the newest revision.
func (h *History) Commit(n *network.Network) {
	rev := n.Clone()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.revisions = append(h.revisions[:h.cursor+1], rev)
	if over := len(h.revisions) - h.max; over > 0 {
		clear(h.revisions[:over])
		h.revisions = h.revisions[over:]
	}
	h.cursor = len(h.revisions) - 1
	h.logger.Debug("revision committed", "revision", h.cursor, "nodes", rev.NodeCount())
	observability.History().OnCommit(len(h.revisions))
}

// Move shifts the cursor and returns a clone of the revision it lands on.
// Moves past either end stay on the last available revision. An empty history
// returns a NOT_FOUND error.
func (h *History) Move(d Direction) (*network.Network, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.revisions) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "history is empty")
	}
	switch d {
	case Oldest:
		h.cursor = 0
	case Older:
		h.cursor = max(h.cursor-1, 0)
	case Newer:
		h.cursor = min(h.cursor+1, len(h.revisions)-1)
	case Newest:
		h.cursor = len(h.revisions) - 1
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown history direction %q", d)
	}
	observability.History().OnNavigate(string(d), h.cursor)
	return h.revisions[h.cursor].Clone(), nil
}

// Oldest moves to the first revision.
func (h *History) Oldest() (*network.Network, error) { return h.Move(Oldest) }

// Older moves one revision back.
func (h *History) Older() (*network.Network, error) { return h.Move(Older) }

// Newer moves one revision forward.
func (h *History) Newer() (*network.Network, error) { return h.Move(Newer) }

// Newest moves to the latest revision.
func (h *History) Newest() (*network.Network, error) { return h.Move(Newest) }

// Restore moves in direction d and loads the revision into dst. dst keeps its
// observers; the restore itself is not recorded.
func (h *History) Restore(d Direction, dst *network.Network) error {
	rev, err := h.Move(d)
	if err != nil {
		return err
	}
	if err := dst.Update(rev.Describe()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "restore %s revision", d)
	}
	return nil
}

// Len returns the number of stored revisions.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.revisions)
}

// Index returns the cursor position, or -1 when empty.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// CanUndo reports whether an older revision exists.
func (h *History) CanUndo() bool { return h.Index() > 0 }

// CanRedo reports whether a newer revision exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.revisions)-1
}

var _ network.Observer = (*History)(nil)

package network

// Observer receives the notifications a network emits towards its external
// collaborators. Calls happen synchronously, after the mutation and its
// re-derivation have completed.
type Observer interface {
	// NetworkChanged fires after every committed mutation. A revision history
	// typically stores a clone here.
	NetworkChanged(n *Network)

	// ActivityGraphChanged fires when recorder wiring changes and activity
	// views must be re-initialized.
	ActivityGraphChanged(n *Network)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) NetworkChanged(*Network) {}

func (NoopObserver) ActivityGraphChanged(*Network) {}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are skipped.
type ObserverFuncs struct {
	Changed       func(*Network)
	ActivityGraph func(*Network)
}

// NetworkChanged calls f.Changed.
func (f ObserverFuncs) NetworkChanged(n *Network) {
	if f.Changed != nil {
		f.Changed(n)
	}
}

// ActivityGraphChanged calls f.ActivityGraph.
func (f ObserverFuncs) ActivityGraphChanged(n *Network) {
	if f.ActivityGraph != nil {
		f.ActivityGraph(n)
	}
}

var (
	_ Observer = NoopObserver{}
	_ Observer = ObserverFuncs{}
)

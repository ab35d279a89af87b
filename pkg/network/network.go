package network

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/observability"
)

// Network owns the ordered nodes and connections of one graph.
//
// A Network is not safe for concurrent use. Callers that share one between
// goroutines must serialize every call, serializations included.
type Network struct {
	registry    model.Registry
	observer    Observer
	logger      *log.Logger
	nodes       []*Node
	byID        map[string]*Node
	connections []*Connection
}

// Option configures a Network.
type Option func(*Network)

// WithObserver sets the collaborator notified after mutations.
func WithObserver(o Observer) Option {
	return func(n *Network) {
		if o != nil {
			n.observer = o
		}
	}
}

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// New returns an empty network resolving models through reg.
func New(reg model.Registry, opts ...Option) *Network {
	n := &Network{
		registry: reg,
		observer: NoopObserver{},
		logger:   log.New(io.Discard),
		byID:     make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Registry returns the model registry.
func (n *Network) Registry() model.Registry { return n.registry }

// Nodes returns the nodes in order.
func (n *Network) Nodes() []*Node { return slices.Clone(n.nodes) }

// Connections returns the connections in order.
func (n *Network) Connections() []*Connection { return slices.Clone(n.connections) }

// Node returns the node at position i, or nil.
func (n *Network) Node(i int) *Node {
	if i < 0 || i >= len(n.nodes) {
		return nil
	}
	return n.nodes[i]
}

// NodeByID returns the node with the given ID, or nil.
func (n *Network) NodeByID(id string) *Node { return n.byID[id] }

// Connection returns the connection at position i, or nil.
func (n *Network) Connection(i int) *Connection {
	if i < 0 || i >= len(n.connections) {
		return nil
	}
	return n.connections[i]
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// ConnectionCount returns the number of connections.
func (n *Network) ConnectionCount() int { return len(n.connections) }

// IsEmpty reports whether the network has neither nodes nor connections.
func (n *Network) IsEmpty() bool { return len(n.nodes) == 0 && len(n.connections) == 0 }

// Neurons returns the nodes whose model is a neuron.
func (n *Network) Neurons() []*Node {
	return n.filter(func(node *Node) bool { return node.ElementType() == model.ElementNeuron })
}

// Recorders returns the nodes whose model is a recorder.
func (n *Network) Recorders() []*Node {
	return n.filter((*Node).IsRecorder)
}

// Stimulators returns the nodes whose model is a stimulator.
func (n *Network) Stimulators() []*Node {
	return n.filter(func(node *Node) bool { return node.ElementType() == model.ElementStimulator })
}

func (n *Network) filter(keep func(*Node) bool) []*Node {
	var out []*Node
	for _, node := range n.nodes {
		if keep(node) {
			out = append(out, node)
		}
	}
	return out
}

// AddNode appends a node built from desc. An unknown model is accepted; the
// node then has no element type and keeps the described parameters as given.
func (n *Network) AddNode(desc NodeDescription) *Node {
	node := n.addNode(desc)
	n.commit("add-node", node.IsRecorder())
	return node
}

func (n *Network) addNode(desc NodeDescription) *Node {
	id := desc.ID
	if id == "" || n.byID[id] != nil {
		id = uuid.NewString()
	}
	node := newNode(n, id, desc)
	node.index = len(n.nodes)
	n.nodes = append(n.nodes, node)
	n.byID[id] = node
	return node
}

// AddConnection appends an edge between two nodes of this network. Endpoints
// are resolved by ID when given, otherwise by position.
func (n *Network) AddConnection(desc ConnectionDescription) (*Connection, error) {
	c, err := n.addConnection(desc)
	if err != nil {
		return nil, err
	}
	// A multimeter gaining its first target starts from the default selection.
	if source := c.Source(); source.IsMultimeter() && len(source.recordFrom) == 0 && len(source.Targets()) == 1 {
		source.recordFrom = slices.Clone(DefaultRecordFrom)
	}
	n.commit("add-connection", c.touchesRecorder())
	return c, nil
}

func (n *Network) addConnection(desc ConnectionDescription) (*Connection, error) {
	source, err := n.endpoint(desc.SourceID, desc.Source, "source")
	if err != nil {
		return nil, err
	}
	target, err := n.endpoint(desc.TargetID, desc.Target, "target")
	if err != nil {
		return nil, err
	}
	id := desc.ID
	if id == "" || slices.ContainsFunc(n.connections, func(c *Connection) bool { return c.id == id }) {
		id = uuid.NewString()
	}
	c := newConnection(n, id, source, target, desc)
	c.index = len(n.connections)
	n.connections = append(n.connections, c)
	return c, nil
}

func (n *Network) endpoint(id string, pos int, role string) (*Node, error) {
	if id != "" {
		if node := n.byID[id]; node != nil {
			return node, nil
		}
		return nil, errors.Reference("%s node %s is not part of this network", role, id)
	}
	if node := n.Node(pos); node != nil {
		return node, nil
	}
	return nil, errors.Reference("%s node %d is not part of this network", role, pos)
}

// DeleteNode removes node together with every connection that references it,
// then reindexes the remaining nodes. Deleting a node that is not part of
// this network, including one already deleted, fails.
func (n *Network) DeleteNode(node *Node) error {
	if node == nil || node.network != n || n.byID[node.id] != node {
		return errors.Reference("node is not part of this network")
	}
	recorder := node.IsRecorder()
	n.connections = slices.DeleteFunc(n.connections, func(c *Connection) bool {
		if c.sourceID == node.id || c.targetID == node.id {
			c.network = nil
			return true
		}
		return false
	})
	n.nodes = slices.Delete(n.nodes, node.index, node.index+1)
	delete(n.byID, node.id)
	node.network = nil
	n.commit("delete-node", recorder)
	return nil
}

// DeleteConnection removes c.
func (n *Network) DeleteConnection(c *Connection) error {
	if c == nil || c.network != n || !slices.Contains(n.connections, c) {
		return errors.Reference("connection is not part of this network")
	}
	recorder := c.touchesRecorder()
	n.connections = slices.DeleteFunc(n.connections, func(x *Connection) bool { return x == c })
	c.network = nil
	n.commit("delete-connection", recorder)
	return nil
}

// Clean resynchronizes positions and narrows every multimeter's channel
// selection to its current recordables. It is idempotent.
func (n *Network) Clean() {
	for i, node := range n.nodes {
		node.index = i
	}
	for i, c := range n.connections {
		c.index = i
	}
	for _, node := range n.nodes {
		node.collectRecordFromTargets()
	}
}

// Update replaces the content of the network with desc, adding nodes and then
// connections in order. It does not notify the change observer. When a
// connection cannot be resolved the previous content is restored and the
// error is returned. Node IDs must be unique within desc.
func (n *Network) Update(desc Description) error {
	if err := desc.CheckNodeIDs(); err != nil {
		return err
	}
	prevNodes, prevConns, prevByID := n.nodes, n.connections, n.byID
	n.nodes, n.connections, n.byID = nil, nil, make(map[string]*Node, len(desc.Nodes))

	for _, nd := range desc.Nodes {
		n.addNode(nd)
	}
	recorder := false
	for i, cd := range desc.Connections {
		c, err := n.addConnection(cd)
		if err != nil {
			for _, node := range n.nodes {
				node.network = nil
			}
			n.nodes, n.connections, n.byID = prevNodes, prevConns, prevByID
			return fmt.Errorf("connection %d: %w", i, err)
		}
		recorder = recorder || c.touchesRecorder()
	}
	for _, node := range prevNodes {
		node.network = nil
	}
	for _, c := range prevConns {
		c.network = nil
	}

	n.Clean()
	observability.Network().OnMutation("update", len(n.nodes), len(n.connections))
	if recorder {
		n.observer.ActivityGraphChanged(n)
	}
	return nil
}

// Empty removes every node and connection.
func (n *Network) Empty() {
	for _, node := range n.nodes {
		node.network = nil
	}
	for _, c := range n.connections {
		c.network = nil
	}
	n.nodes, n.connections = nil, nil
	n.byID = make(map[string]*Node)
	n.commit("empty", false)
}

// Clone returns a deep copy sharing no mutable state with n. The copy uses the
// same registry and logger but no observer unless opts sets one.
func (n *Network) Clone(opts ...Option) *Network {
	c := New(n.registry, append([]Option{WithLogger(n.logger)}, opts...)...)
	c.nodes = make([]*Node, len(n.nodes))
	for i, node := range n.nodes {
		c.nodes[i] = node.clone(c)
		c.byID[node.id] = c.nodes[i]
	}
	c.connections = make([]*Connection, len(n.connections))
	for i, conn := range n.connections {
		c.connections[i] = conn.clone(c)
	}
	return c
}

// Describe returns the db shape of the network.
func (n *Network) Describe() Description {
	v, _ := n.Export(TargetDB)
	return v.(Description)
}

// Simulation returns the execution shape of the network.
func (n *Network) Simulation() Simulation {
	v, _ := n.Export(TargetSimulator)
	return v.(Simulation)
}

// Export walks the network once and returns its shape for target: a
// [Description] for TargetDB or a [Simulation] for TargetSimulator.
func (n *Network) Export(target Target) (any, error) {
	if target != TargetDB && target != TargetSimulator {
		return nil, errors.New(errors.ErrCodeInvalidTarget, "unknown serialization target %q", target)
	}
	start := time.Now()
	db := Description{
		Nodes:       make([]NodeDescription, 0, len(n.nodes)),
		Connections: make([]ConnectionDescription, 0, len(n.connections)),
	}
	sim := Simulation{
		Nodes:       make([]SimulatorNode, 0, len(n.nodes)),
		Connections: make([]SimulatorConnection, 0, len(n.connections)),
	}
	for _, node := range n.nodes {
		switch target {
		case TargetDB:
			db.Nodes = append(db.Nodes, node.Describe())
		case TargetSimulator:
			sim.Nodes = append(sim.Nodes, node.Simulation())
		}
	}
	for _, c := range n.connections {
		switch target {
		case TargetDB:
			db.Connections = append(db.Connections, c.Describe())
		case TargetSimulator:
			sim.Connections = append(sim.Connections, c.Simulation())
		}
	}
	observability.Network().OnExport(string(target), len(n.nodes), time.Since(start))
	if target == TargetSimulator {
		return sim, nil
	}
	return db, nil
}

// MarshalTarget returns the indented JSON encoding of the shape for target.
func (n *Network) MarshalTarget(target Target) ([]byte, error) {
	v, err := n.Export(target)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s network", target)
	}
	return data, nil
}

// MarshalJSON encodes the db shape.
func (n *Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Describe())
}

// Problems reports every model reference that does not resolve. None of them
// stop the network from being edited or serialized.
func (n *Network) Problems() []error {
	var problems []error
	for _, node := range n.nodes {
		if _, err := node.Model(); err != nil {
			problems = append(problems, fmt.Errorf("node %d: %w", node.index, err))
		}
	}
	for _, c := range n.connections {
		if _, err := n.synapseModel(c.synapse); err != nil {
			problems = append(problems, fmt.Errorf("connection %d: %w", c.index, err))
		}
	}
	return problems
}

func (n *Network) lookup(id string) (*model.Model, error) {
	if n.registry == nil {
		return nil, errors.UnknownModel(id)
	}
	m, err := n.registry.Lookup(id)
	if err != nil {
		observability.Network().OnUnknownModel(id)
		n.logger.Debug("model lookup failed", "model", id, "err", err)
		return nil, err
	}
	return m, nil
}

// synapseModel resolves a connection's synapse model. A model of another
// element type is treated like an unresolved one.
func (n *Network) synapseModel(id string) (*model.Model, error) {
	m, err := n.lookup(id)
	if err != nil {
		return nil, err
	}
	if m.ElementType != model.ElementSynapse {
		n.logger.Debug("not a synapse model", "model", id, "element_type", m.ElementType)
		return nil, errors.New(errors.ErrCodeInvalidModel, "model %q is a %s, not a synapse", id, m.ElementType)
	}
	return m, nil
}

// commit re-derives dependent state, then emits the change notifications.
func (n *Network) commit(op string, activity bool) {
	n.Clean()
	observability.Network().OnMutation(op, len(n.nodes), len(n.connections))
	n.logger.Debug("network changed", "op", op, "nodes", len(n.nodes), "connections", len(n.connections))
	if activity {
		n.observer.ActivityGraphChanged(n)
	}
	n.observer.NetworkChanged(n)
}

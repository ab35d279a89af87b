package network

import (
	"slices"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/model"
)

// DefaultRecordFrom is the channel selection a multimeter starts with.
var DefaultRecordFrom = []string{"V_m"}

// Inhibitory is the polarity term that makes outgoing weights negative.
const Inhibitory = "inhibitory"

// Node is a graph vertex: a model reference, a unit count and a parameter
// set. Its model is resolved through the network's registry on every access.
type Node struct {
	network    *Network
	id         string
	index      int
	modelID    string
	size       int
	params     []*Parameter
	view       *View
	spatial    Spatial
	recordFrom []string
}

func newNode(net *Network, id string, desc NodeDescription) *Node {
	n := &Node{
		network: net,
		id:      id,
		modelID: desc.Model,
		size:    desc.Size,
		view:    desc.View.clone(),
	}
	if n.size < 1 {
		n.size = 1
	}
	if desc.Spatial != nil {
		n.spatial = desc.Spatial.Clone()
	}

	m, err := n.Model()
	if err != nil {
		n.params = buildParameters(nil, desc.Params)
		n.recordFrom = slices.Clone(desc.RecordFrom)
		return n
	}
	n.params = buildParameters(m, desc.Params)
	if m.IsMultimeter() {
		if desc.RecordFrom != nil {
			n.recordFrom = slices.Clone(desc.RecordFrom)
		} else {
			n.recordFrom = slices.Clone(DefaultRecordFrom)
		}
	}
	return n
}

// ID returns the stable identifier of the node.
func (n *Node) ID() string { return n.id }

// Index returns the position of the node in its network, or -1 once the node
// has been deleted.
func (n *Node) Index() int {
	if n.network == nil {
		return -1
	}
	return n.index
}

// Network returns the owning network, or nil once the node has been deleted.
func (n *Node) Network() *Network { return n.network }

// ModelID returns the model reference.
func (n *Node) ModelID() string { return n.modelID }

// Model resolves the node's model. The result is never cached, so catalogue
// edits are visible on the next call.
func (n *Node) Model() (*model.Model, error) {
	if n.network == nil {
		return nil, errors.Reference("node %s is not part of a network", n.id)
	}
	return n.network.lookup(n.modelID)
}

// ElementType returns the resolved element type, or "" when the model is
// unknown.
func (n *Node) ElementType() string {
	m, err := n.Model()
	if err != nil {
		return ""
	}
	return m.ElementType
}

// IsRecorder reports whether the resolved model is a recorder.
func (n *Node) IsRecorder() bool {
	m, err := n.Model()
	return err == nil && m.IsRecorder()
}

// IsMultimeter reports whether the resolved model carries a channel selection.
func (n *Node) IsMultimeter() bool {
	m, err := n.Model()
	return err == nil && m.IsMultimeter()
}

// Size returns the unit count.
func (n *Node) Size() int { return n.size }

// SetSize changes the unit count.
func (n *Node) SetSize(size int) error {
	if err := n.attached(); err != nil {
		return err
	}
	if err := errors.ValidateSize(size); err != nil {
		return err
	}
	n.size = size
	n.network.commit("set-size", false)
	return nil
}

// Parameters returns the parameter set in model order.
func (n *Node) Parameters() []*Parameter { return slices.Clone(n.params) }

// VisibleParameters returns the parameters exposed for editing.
func (n *Node) VisibleParameters() []*Parameter {
	var out []*Parameter
	for _, p := range n.params {
		if p.visible {
			out = append(out, p)
		}
	}
	return out
}

// Parameter returns the parameter with the given id, or nil.
func (n *Node) Parameter(id string) *Parameter { return findParameter(n.params, id) }

// HasParameter reports whether the node has a parameter with the given id.
func (n *Node) HasParameter(id string) bool { return n.Parameter(id) != nil }

// SetParameter sets the value of an existing parameter.
func (n *Node) SetParameter(id string, value float64) error {
	if err := n.attached(); err != nil {
		return err
	}
	p := n.Parameter(id)
	if p == nil {
		return errors.Reference("node %d has no parameter %q", n.index, id)
	}
	p.SetValue(value)
	n.network.commit("set-parameter", false)
	return nil
}

// ResetParameters restores every parameter to its default.
func (n *Node) ResetParameters() error {
	if err := n.attached(); err != nil {
		return err
	}
	for _, p := range n.params {
		p.Reset()
	}
	n.network.commit("reset-parameters", false)
	return nil
}

// Sources returns the nodes with a connection into n, in connection order.
// It scans every connection.
func (n *Node) Sources() []*Node {
	if n.network == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.network.connections {
		if c.targetID == n.id {
			out = append(out, n.network.byID[c.sourceID])
		}
	}
	return out
}

// Targets returns the nodes n connects to, in connection order.
// It scans every connection.
func (n *Node) Targets() []*Node {
	if n.network == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.network.connections {
		if c.sourceID == n.id {
			out = append(out, n.network.byID[c.targetID])
		}
	}
	return out
}

// Outgoing returns the connections leaving n.
func (n *Node) Outgoing() []*Connection {
	if n.network == nil {
		return nil
	}
	var out []*Connection
	for _, c := range n.network.connections {
		if c.sourceID == n.id {
			out = append(out, c)
		}
	}
	return out
}

// Recorded returns the nodes a recorder observes: spike recorders observe
// their sources, every other recorder its targets. Non-recorders observe
// nothing.
func (n *Node) Recorded() []*Node {
	m, err := n.Model()
	if err != nil || !m.IsRecorder() {
		return nil
	}
	switch m.Base() {
	case model.SpikeRecorder, model.SpikeDetector:
		return n.Sources()
	default:
		return n.Targets()
	}
}

// Recordables returns the channels a multimeter may record given its current
// targets: the sorted intersection of the targets' recordables. It is empty
// for other nodes, for a multimeter without targets, and when any target's
// model is unknown.
func (n *Node) Recordables() []string {
	out := []string{}
	if !n.IsMultimeter() {
		return out
	}
	targets := n.Targets()
	if len(targets) == 0 {
		return out
	}
	var common []string
	for i, t := range targets {
		m, err := t.Model()
		if err != nil {
			return out
		}
		if i == 0 {
			common = slices.Clone(m.Recordables)
			continue
		}
		common = slices.DeleteFunc(common, func(ch string) bool {
			return !slices.Contains(m.Recordables, ch)
		})
	}
	slices.Sort(common)
	return append(out, slices.Compact(common)...)
}

// RecordFrom returns the selected channels.
func (n *Node) RecordFrom() []string { return slices.Clone(n.recordFrom) }

// SetRecordFrom replaces the channel selection. Channels outside
// [Node.Recordables] are dropped before the change is committed.
func (n *Node) SetRecordFrom(channels []string) error {
	if err := n.attached(); err != nil {
		return err
	}
	if !n.IsMultimeter() {
		return errors.New(errors.ErrCodeInvalidInput, "node %d (%s) does not record from channels", n.index, n.modelID)
	}
	n.recordFrom = slices.Clone(channels)
	if n.recordFrom == nil {
		n.recordFrom = []string{}
	}
	n.network.commit("set-record-from", false)
	return nil
}

// collectRecordFromTargets narrows the selection to the current recordables.
// Nodes whose model does not resolve keep their selection.
func (n *Node) collectRecordFromTargets() {
	m, err := n.Model()
	if err != nil || !m.IsMultimeter() {
		return
	}
	recordables := n.Recordables()
	kept := make([]string, 0, len(n.recordFrom))
	for _, ch := range n.recordFrom {
		if slices.Contains(recordables, ch) && !slices.Contains(kept, ch) {
			kept = append(kept, ch)
		}
	}
	n.recordFrom = kept
}

// SetModel switches the node to another model. Size, parameters, placement and
// channel selection start over from the new model's defaults.
func (n *Node) SetModel(id string) error {
	if err := n.attached(); err != nil {
		return err
	}
	if err := errors.ValidateModelID(id); err != nil {
		return err
	}
	n.modelID = id
	n.size = 1
	n.spatial = Spatial{}
	n.recordFrom = nil

	m, err := n.Model()
	if err != nil {
		n.params = nil
	} else {
		n.params = buildParameters(m, nil)
		if m.IsMultimeter() {
			n.recordFrom = slices.Clone(DefaultRecordFrom)
		}
	}
	n.network.commit("set-model", err == nil && m.IsRecorder())
	return nil
}

// SetWeightPolarity sets the sign of every outgoing weight whose target is not
// a recorder: negative for [Inhibitory], positive otherwise. Magnitudes are
// kept.
func (n *Node) SetWeightPolarity(term string) error {
	if err := n.attached(); err != nil {
		return err
	}
	sign := 1.0
	if term == Inhibitory {
		sign = -1.0
	}
	for _, c := range n.Outgoing() {
		if t := c.Target(); t != nil && t.IsRecorder() {
			continue
		}
		w := c.Weight()
		if w < 0 {
			w = -w
		}
		c.setWeight(sign * w)
	}
	n.network.commit("set-weight-polarity", false)
	return nil
}

// View returns a copy of the editor placement, or nil.
func (n *Node) View() *View { return n.view.clone() }

// SetView replaces the editor placement.
func (n *Node) SetView(v View) error {
	if err := n.attached(); err != nil {
		return err
	}
	n.view = v.clone()
	n.network.commit("set-view", false)
	return nil
}

// Spatial returns a copy of the placement metadata.
func (n *Node) Spatial() Spatial { return n.spatial.Clone() }

// SetSpatial replaces the placement metadata.
func (n *Node) SetSpatial(s Spatial) error {
	if err := n.attached(); err != nil {
		return err
	}
	n.spatial = s.Clone()
	n.network.commit("set-spatial", false)
	return nil
}

// Describe returns the db fragment of the node.
func (n *Node) Describe() NodeDescription {
	d := NodeDescription{
		ID:         n.id,
		Model:      n.modelID,
		Size:       n.size,
		Params:     describeParameters(n.params),
		View:       n.view.clone(),
		RecordFrom: slices.Clone(n.recordFrom),
	}
	if n.spatial.HasPositions() {
		s := n.spatial.Clone()
		d.Spatial = &s
	}
	return d
}

// Simulation returns the execution fragment of the node.
func (n *Node) Simulation() SimulatorNode {
	s := SimulatorNode{
		Model:       n.modelID,
		N:           n.size,
		ElementType: n.ElementType(),
		Params:      visibleValues(n.params),
	}
	if n.IsMultimeter() && len(n.recordFrom) > 0 {
		s.RecordFrom = slices.Clone(n.recordFrom)
	}
	if n.spatial.HasPositions() {
		s.Spatial = n.spatial.simulator()
	}
	return s
}

// Export returns the node's fragment for target.
func (n *Node) Export(target Target) (any, error) {
	switch target {
	case TargetDB:
		return n.Describe(), nil
	case TargetSimulator:
		return n.Simulation(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidTarget, "unknown serialization target %q", target)
	}
}

func (n *Node) attached() error {
	if n.network == nil {
		return errors.Reference("node %s is not part of a network", n.id)
	}
	return nil
}

func (n *Node) clone(net *Network) *Node {
	c := &Node{
		network:    net,
		id:         n.id,
		index:      n.index,
		modelID:    n.modelID,
		size:       n.size,
		params:     make([]*Parameter, len(n.params)),
		view:       n.view.clone(),
		spatial:    n.spatial.Clone(),
		recordFrom: slices.Clone(n.recordFrom),
	}
	for i, p := range n.params {
		c.params[i] = p.clone()
	}
	return c
}

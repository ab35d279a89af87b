package network

import (
	"slices"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/model"
)

// DefaultSynapse is the synapse model of connections that do not name one.
const DefaultSynapse = "static_synapse"

// WeightParam is the parameter id of the synaptic weight.
const WeightParam = "weight"

// Connection is a directed edge between two nodes of the same network.
// Endpoints are held by node ID and resolved through the network, so
// reindexing never invalidates them.
type Connection struct {
	network     *Network
	id          string
	index       int
	sourceID    string
	targetID    string
	synapse     string
	elementType string
	params      []*Parameter
}

func newConnection(net *Network, id string, source, target *Node, desc ConnectionDescription) *Connection {
	c := &Connection{
		network:     net,
		id:          id,
		sourceID:    source.id,
		targetID:    target.id,
		synapse:     desc.Synapse,
		elementType: desc.ElementType,
	}
	if c.synapse == "" {
		c.synapse = DefaultSynapse
	}
	m, err := net.synapseModel(c.synapse)
	if err != nil {
		m = nil
	}
	c.params = connectionParameters(m, desc.Params)
	return c
}

// connectionParameters is buildParameters plus a described weight that the
// synapse model does not define. SetWeight adds such a weight, so it must
// survive a db round trip.
func connectionParameters(m *model.Model, described []ParamDescription) []*Parameter {
	params := buildParameters(m, described)
	if m == nil || findParameter(params, WeightParam) != nil {
		return params
	}
	for _, d := range described {
		if d.ID == WeightParam {
			w := parameterFromDescription(d)
			w.defaultValue = 1
			return append(params, w)
		}
	}
	return params
}

// ID returns the stable identifier of the connection.
func (c *Connection) ID() string { return c.id }

// Index returns the position of the connection in its network, or -1 once it
// has been deleted.
func (c *Connection) Index() int {
	if c.network == nil {
		return -1
	}
	return c.index
}

// Source returns the source node, or nil once the connection is deleted.
func (c *Connection) Source() *Node {
	if c.network == nil {
		return nil
	}
	return c.network.byID[c.sourceID]
}

// Target returns the target node, or nil once the connection is deleted.
func (c *Connection) Target() *Node {
	if c.network == nil {
		return nil
	}
	return c.network.byID[c.targetID]
}

// SynapseModel returns the synapse model id.
func (c *Connection) SynapseModel() string { return c.synapse }

// ElementType returns the element type hint given at creation, if any.
func (c *Connection) ElementType() string { return c.elementType }

// Parameters returns the edge parameters.
func (c *Connection) Parameters() []*Parameter { return slices.Clone(c.params) }

// Parameter returns the parameter with the given id, or nil.
func (c *Connection) Parameter(id string) *Parameter { return findParameter(c.params, id) }

// Weight returns the synaptic weight. An edge without a weight parameter has
// weight 1.
func (c *Connection) Weight() float64 {
	if p := c.Parameter(WeightParam); p != nil {
		return p.value
	}
	return 1
}

// SetWeight sets the synaptic weight, adding the parameter when missing.
func (c *Connection) SetWeight(w float64) error {
	if err := c.attached(); err != nil {
		return err
	}
	c.setWeight(w)
	c.network.commit("set-weight", false)
	return nil
}

func (c *Connection) setWeight(w float64) {
	if p := c.Parameter(WeightParam); p != nil {
		p.value = w
		return
	}
	c.params = append(c.params, &Parameter{id: WeightParam, value: w, defaultValue: 1, visible: true})
}

// SetParameter sets the value of an existing edge parameter.
func (c *Connection) SetParameter(id string, value float64) error {
	if err := c.attached(); err != nil {
		return err
	}
	p := c.Parameter(id)
	if p == nil {
		return errors.Reference("connection %d has no parameter %q", c.index, id)
	}
	p.SetValue(value)
	c.network.commit("set-parameter", false)
	return nil
}

// ResetParameters restores every edge parameter to its default.
func (c *Connection) ResetParameters() error {
	if err := c.attached(); err != nil {
		return err
	}
	for _, p := range c.params {
		p.Reset()
	}
	c.network.commit("reset-parameters", false)
	return nil
}

// touchesRecorder reports whether the edge feeds or leaves a recorder.
func (c *Connection) touchesRecorder() bool {
	if c.elementType == model.ElementRecorder {
		return true
	}
	if s := c.Source(); s != nil && s.IsRecorder() {
		return true
	}
	t := c.Target()
	return t != nil && t.IsRecorder()
}

// Describe returns the db fragment of the connection.
func (c *Connection) Describe() ConnectionDescription {
	d := ConnectionDescription{
		ID:          c.id,
		SourceID:    c.sourceID,
		TargetID:    c.targetID,
		Synapse:     c.synapse,
		ElementType: c.elementType,
		Params:      describeParameters(c.params),
	}
	if s := c.Source(); s != nil {
		d.Source = s.index
	}
	if t := c.Target(); t != nil {
		d.Target = t.index
	}
	return d
}

// Simulation returns the execution fragment of the connection.
func (c *Connection) Simulation() SimulatorConnection {
	s := SimulatorConnection{Params: visibleValues(c.params)}
	if src := c.Source(); src != nil {
		s.Source = src.index
	}
	if tgt := c.Target(); tgt != nil {
		s.Target = tgt.index
	}
	if c.synapse != DefaultSynapse {
		s.SynapseModel = c.synapse
	}
	return s
}

func (c *Connection) attached() error {
	if c.network == nil {
		return errors.Reference("connection %s is not part of a network", c.id)
	}
	return nil
}

func (c *Connection) clone(net *Network) *Connection {
	cp := *c
	cp.network = net
	cp.params = make([]*Parameter, len(c.params))
	for i, p := range c.params {
		cp.params[i] = p.clone()
	}
	return &cp
}

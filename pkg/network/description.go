package network

import (
	"github.com/matzehuels/nestgraph/pkg/errors"
)

// Target selects one of the two serialized shapes of a network.
type Target string

const (
	// TargetDB is the full, round-trippable shape used for persistence and
	// editing. Feeding it to [Network.Update] reproduces an equivalent network.
	TargetDB Target = "db"

	// TargetSimulator is the minimal execution shape consumed by the
	// simulation engine. It never carries visibility flags or view metadata.
	TargetSimulator Target = "simulator"
)

// ParseTarget converts a string to a Target. The empty string means TargetDB.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case "", TargetDB:
		return TargetDB, nil
	case TargetSimulator:
		return TargetSimulator, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidTarget, "unknown serialization target %q (want db or simulator)", s)
	}
}

// Description is the plain, persisted form of a network. It is both the
// hydration input of [Network.Update] and the output of the db target.
type Description struct {
	Nodes       []NodeDescription       `json:"nodes" yaml:"nodes" validate:"dive"`
	Connections []ConnectionDescription `json:"connections" yaml:"connections" validate:"dive"`
}

// CheckNodeIDs reports a node ID used more than once. Connections resolve
// endpoints by ID, so a repeated ID would bind them to the wrong node.
func (d Description) CheckNodeIDs() error {
	seen := make(map[string]int, len(d.Nodes))
	for i, nd := range d.Nodes {
		if nd.ID == "" {
			continue
		}
		if first, ok := seen[nd.ID]; ok {
			return errors.New(errors.ErrCodeInvalidInput, "node %d repeats the id %q of node %d", i, nd.ID, first)
		}
		seen[nd.ID] = i
	}
	return nil
}

// NodeDescription describes one node.
//
// RecordFrom distinguishes absent (nil, a multimeter gets the default
// selection) from empty (an explicit empty selection).
type NodeDescription struct {
	ID         string             `json:"id,omitempty" yaml:"id,omitempty"`
	Model      string             `json:"model" yaml:"model" validate:"required,max=128"`
	Size       int                `json:"size,omitempty" yaml:"size,omitempty" validate:"gte=0"`
	Params     []ParamDescription `json:"params,omitempty" yaml:"params,omitempty" validate:"dive"`
	View       *View              `json:"view,omitempty" yaml:"view,omitempty"`
	Spatial    *Spatial           `json:"spatial,omitempty" yaml:"spatial,omitempty" validate:"omitempty"`
	RecordFrom Channels           `json:"recordFrom,omitzero" yaml:"recordFrom,omitempty" validate:"dive,required"`
}

// Channels is a channel selection. Only a nil selection counts as unset when
// encoding, so an explicit empty selection survives a round trip.
type Channels []string

// IsZero reports whether the selection is unset.
func (c Channels) IsZero() bool { return c == nil }

// ConnectionDescription describes one edge. Endpoints are given by node ID
// when SourceID/TargetID are set, otherwise by position in the node list.
type ConnectionDescription struct {
	ID          string             `json:"id,omitempty" yaml:"id,omitempty"`
	Source      int                `json:"source" yaml:"source" validate:"gte=0"`
	Target      int                `json:"target" yaml:"target" validate:"gte=0"`
	SourceID    string             `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
	TargetID    string             `json:"targetId,omitempty" yaml:"targetId,omitempty"`
	Synapse     string             `json:"synapse,omitempty" yaml:"synapse,omitempty" validate:"max=128"`
	ElementType string             `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	Params      []ParamDescription `json:"params,omitempty" yaml:"params,omitempty" validate:"dive"`
}

// ParamDescription is a parameter override. A nil Visible keeps the
// catalogue's visibility.
type ParamDescription struct {
	ID      string  `json:"id" yaml:"id" validate:"required,max=64"`
	Value   float64 `json:"value" yaml:"value"`
	Visible *bool   `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// View is editor placement metadata. It is persisted in the db shape only.
type View struct {
	Position *Point `json:"position,omitempty" yaml:"position,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v *View) clone() *View {
	if v == nil {
		return nil
	}
	c := *v
	if v.Position != nil {
		p := *v.Position
		c.Position = &p
	}
	return &c
}

// Simulation is the execution shape of a network.
type Simulation struct {
	Nodes       []SimulatorNode       `json:"nodes"`
	Connections []SimulatorConnection `json:"connections"`
}

// SimulatorNode is the execution shape of a node.
type SimulatorNode struct {
	Model       string             `json:"model"`
	N           int                `json:"n"`
	ElementType string             `json:"element_type"`
	Params      map[string]float64 `json:"params"`
	RecordFrom  []string           `json:"record_from,omitempty"`
	Spatial     map[string]any     `json:"spatial,omitempty"`
}

// SimulatorConnection is the execution shape of a connection. Endpoints are
// positions in the node list.
type SimulatorConnection struct {
	Source       int                `json:"source"`
	Target       int                `json:"target"`
	SynapseModel string             `json:"synapse_model,omitempty"`
	Params       map[string]float64 `json:"params"`
}

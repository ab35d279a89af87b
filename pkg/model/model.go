package model

import (
	"slices"

	"github.com/matzehuels/nestgraph/pkg/errors"
)

// Element types published by the simulation engine.
const (
	ElementNeuron     = "neuron"
	ElementStimulator = "stimulator"
	ElementRecorder   = "recorder"
	ElementSynapse    = "synapse"
)

// Base models with recorder-specific behaviour.
const (
	Multimeter    = "multimeter"
	Voltmeter     = "voltmeter"
	SpikeRecorder = "spike_recorder"
	SpikeDetector = "spike_detector"
)

// ParamDefault is the catalogue entry for one model parameter.
type ParamDefault struct {
	ID     string  `toml:"id" yaml:"id" json:"id"`
	Label  string  `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`
	Unit   string  `toml:"unit,omitempty" yaml:"unit,omitempty" json:"unit,omitempty"`
	Value  float64 `toml:"value" yaml:"value" json:"value"`
	Hidden bool    `toml:"hidden,omitempty" yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Visible reports whether the parameter is exposed for editing by default.
func (p ParamDefault) Visible() bool { return !p.Hidden }

// Model is the metadata of one simulation model.
type Model struct {
	ID          string         `toml:"id" yaml:"id" json:"id"`
	Label       string         `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`
	ElementType string         `toml:"element_type" yaml:"element_type" json:"element_type"`
	Existing    string         `toml:"existing,omitempty" yaml:"existing,omitempty" json:"existing,omitempty"`
	Params      []ParamDefault `toml:"params,omitempty" yaml:"params,omitempty" json:"params,omitempty"`
	Recordables []string       `toml:"recordables,omitempty" yaml:"recordables,omitempty" json:"recordables,omitempty"`
}

// Base returns the engine model this model derives from, or its own ID.
func (m *Model) Base() string {
	if m.Existing != "" {
		return m.Existing
	}
	return m.ID
}

// IsRecorder reports whether the model records signals from other nodes.
func (m *Model) IsRecorder() bool { return m.ElementType == ElementRecorder }

// IsMultimeter reports whether the model is a multimeter-class recorder, the
// only kind that carries a record-from channel selection.
func (m *Model) IsMultimeter() bool { return m.IsRecorder() && m.Base() == Multimeter }

// Param returns the default for the parameter with the given id.
func (m *Model) Param(id string) (ParamDefault, bool) {
	for _, p := range m.Params {
		if p.ID == id {
			return p, true
		}
	}
	return ParamDefault{}, false
}

// Validate checks identifiers and the element type.
func (m *Model) Validate() error {
	if err := errors.ValidateModelID(m.ID); err != nil {
		return err
	}
	switch m.ElementType {
	case ElementNeuron, ElementStimulator, ElementRecorder, ElementSynapse:
	default:
		return errors.New(errors.ErrCodeInvalidModel, "model %q: unknown element type %q", m.ID, m.ElementType)
	}
	seen := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		if err := errors.ValidateParamID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidModel, err, "model %q", m.ID)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidModel, "model %q: duplicate parameter %q", m.ID, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Clone returns a copy that shares no slices with m.
func (m *Model) Clone() *Model {
	c := *m
	c.Params = slices.Clone(m.Params)
	c.Recordables = slices.Clone(m.Recordables)
	return &c
}

// Registry resolves model identifiers. Implementations must reflect catalogue
// edits on the next call.
type Registry interface {
	Lookup(id string) (*Model, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(id string) (*Model, error)

// Lookup calls f(id).
func (f RegistryFunc) Lookup(id string) (*Model, error) { return f(id) }

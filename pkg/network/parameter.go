package network

import (
	"github.com/matzehuels/nestgraph/pkg/model"
)

// Parameter is one named value bound to a node or a connection.
// Values are not range checked; that is a catalogue concern.
type Parameter struct {
	id           string
	value        float64
	defaultValue float64
	visible      bool
}

// newParameter builds a parameter from its catalogue default, applying the
// description's value and visibility when given.
func newParameter(def model.ParamDefault, override *ParamDescription) *Parameter {
	p := &Parameter{
		id:           def.ID,
		value:        def.Value,
		defaultValue: def.Value,
		visible:      def.Visible(),
	}
	if override != nil {
		p.value = override.Value
		if override.Visible != nil {
			p.visible = *override.Visible
		}
	}
	return p
}

// parameterFromDescription is used when no catalogue entry exists; the
// described value doubles as the default.
func parameterFromDescription(d ParamDescription) *Parameter {
	p := &Parameter{id: d.ID, value: d.Value, defaultValue: d.Value, visible: true}
	if d.Visible != nil {
		p.visible = *d.Visible
	}
	return p
}

// ID returns the parameter identifier.
func (p *Parameter) ID() string { return p.id }

// Value returns the current value.
func (p *Parameter) Value() float64 { return p.value }

// SetValue replaces the current value.
func (p *Parameter) SetValue(v float64) { p.value = v }

// Default returns the catalogue default.
func (p *Parameter) Default() float64 { return p.defaultValue }

// IsDefault reports whether the current value equals the default.
func (p *Parameter) IsDefault() bool { return p.value == p.defaultValue }

// Visible reports whether the parameter is exposed for editing and sent to
// the simulation engine.
func (p *Parameter) Visible() bool { return p.visible }

// SetVisible toggles visibility.
func (p *Parameter) SetVisible(v bool) { p.visible = v }

// Reset restores the default value.
func (p *Parameter) Reset() { p.value = p.defaultValue }

func (p *Parameter) clone() *Parameter {
	c := *p
	return &c
}

// Description returns the persisted form of the parameter.
func (p *Parameter) Description() ParamDescription {
	visible := p.visible
	return ParamDescription{ID: p.id, Value: p.value, Visible: &visible}
}

// buildParameters instantiates a parameter set from a model's defaults and the
// described overrides. Overrides that the model does not define are dropped.
// Without a model the described parameters are taken verbatim.
func buildParameters(m *model.Model, described []ParamDescription) []*Parameter {
	if m == nil {
		params := make([]*Parameter, 0, len(described))
		seen := make(map[string]bool, len(described))
		for _, d := range described {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			params = append(params, parameterFromDescription(d))
		}
		return params
	}

	byID := make(map[string]*ParamDescription, len(described))
	for i := range described {
		if _, dup := byID[described[i].ID]; !dup {
			byID[described[i].ID] = &described[i]
		}
	}
	params := make([]*Parameter, 0, len(m.Params))
	for _, def := range m.Params {
		params = append(params, newParameter(def, byID[def.ID]))
	}
	return params
}

func findParameter(params []*Parameter, id string) *Parameter {
	for _, p := range params {
		if p.id == id {
			return p
		}
	}
	return nil
}

func describeParameters(params []*Parameter) []ParamDescription {
	out := make([]ParamDescription, len(params))
	for i, p := range params {
		out[i] = p.Description()
	}
	return out
}

// visibleValues flattens the visible parameters into the engine's id → value map.
func visibleValues(params []*Parameter) map[string]float64 {
	out := make(map[string]float64, len(params))
	for _, p := range params {
		if p.visible {
			out[p.id] = p.value
		}
	}
	return out
}

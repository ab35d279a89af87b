package network

import "slices"

// Generator kinds.
const (
	GeneratorGrid   = "grid"
	GeneratorRandom = "random"
)

// Spatial is optional placement metadata for the units of a node: either
// explicit positions or a generator the engine expands. It is independent of
// graph topology.
type Spatial struct {
	Positions [][]float64 `json:"positions,omitempty" yaml:"positions,omitempty"`
	Generator *Generator  `json:"generator,omitempty" yaml:"generator,omitempty"`
}

// Generator describes positions the engine generates itself.
type Generator struct {
	Kind     string    `json:"kind" yaml:"kind" validate:"oneof=grid random"`
	Shape    []int     `json:"shape,omitempty" yaml:"shape,omitempty"`
	Extent   []float64 `json:"extent,omitempty" yaml:"extent,omitempty"`
	Center   []float64 `json:"center,omitempty" yaml:"center,omitempty"`
	EdgeWrap bool      `json:"edgeWrap,omitempty" yaml:"edgeWrap,omitempty"`
}

// HasPositions reports whether any placement is defined.
func (s Spatial) HasPositions() bool {
	return len(s.Positions) > 0 || s.Generator != nil
}

// Clone returns a deep copy.
func (s Spatial) Clone() Spatial {
	c := Spatial{}
	if s.Positions != nil {
		c.Positions = make([][]float64, len(s.Positions))
		for i, p := range s.Positions {
			c.Positions[i] = slices.Clone(p)
		}
	}
	if s.Generator != nil {
		g := *s.Generator
		g.Shape = slices.Clone(s.Generator.Shape)
		g.Extent = slices.Clone(s.Generator.Extent)
		g.Center = slices.Clone(s.Generator.Center)
		c.Generator = &g
	}
	return c
}

// simulator returns the engine's spatial specification.
func (s Spatial) simulator() map[string]any {
	if len(s.Positions) > 0 {
		return map[string]any{"positions": s.Clone().Positions}
	}
	g := s.Generator
	out := map[string]any{}
	switch g.Kind {
	case GeneratorRandom:
		out["positions"] = GeneratorRandom
	default:
		out["positions"] = GeneratorGrid
	}
	if len(g.Shape) > 0 {
		out["shape"] = slices.Clone(g.Shape)
	}
	if len(g.Extent) > 0 {
		out["extent"] = slices.Clone(g.Extent)
	}
	if len(g.Center) > 0 {
		out["center"] = slices.Clone(g.Center)
	}
	if g.EdgeWrap {
		out["edge_wrap"] = true
	}
	return out
}

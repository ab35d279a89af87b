// Package model describes the external model catalogue that network nodes and
// connections refer to.
//
// # Overview
//
// A [Model] is metadata published by the simulation engine: an element type
// (neuron, stimulator, recorder, synapse), the default value and visibility of
// every parameter, and, for neuron models, the list of signal channels a
// multimeter may record from.
//
// Networks never hold a model. Nodes keep a model identifier and resolve it
// through a [Registry] on every access, so edits to the catalogue show up in
// every derived view without invalidation. A lookup that fails returns an
// UNKNOWN_MODEL error from [github.com/matzehuels/nestgraph/pkg/errors].
//
// # Catalogues
//
// [MapRegistry] is an in-memory, concurrency-safe registry. It is populated
// from catalogue files with [ReadFile] (TOML, YAML or JSON by extension):
//
//	[[model]]
//	id = "iaf_psc_alpha"
//	element_type = "neuron"
//	recordables = ["V_m", "I_syn_ex", "I_syn_in"]
//
//	  [[model.params]]
//	  id = "V_th"
//	  value = -55.0
//
// [Default] returns the catalogue embedded in the binary, covering the common
// neuron, generator, recorder and synapse models.
package model

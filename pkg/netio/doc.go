// Package netio reads and writes network descriptions.
//
// # Formats
//
// Descriptions are stored as JSON or YAML; [FormatFromPath] picks one from a
// file extension. The document has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"model": "iaf_psc_alpha", "size": 100},
//	    {"model": "multimeter", "recordFrom": ["V_m"]}
//	  ],
//	  "connections": [
//	    {"source": 1, "target": 0}
//	  ]
//	}
//
// Connections name their endpoints by position in the node list, or by node
// ID through sourceId and targetId. Everything else is optional.
//
// # Import
//
// Use [ImportNetwork] to hydrate a network from a file, or [ReadNetwork] for
// any io.Reader. Both validate the description with [Validate] before the
// network is built, so malformed documents never reach the core.
//
// # Export
//
// [WriteNetwork] and [ExportNetwork] write either serialization target. The
// db target re-imports into an equivalent network; the simulator target is
// what the simulation engine consumes and cannot be read back.
package netio

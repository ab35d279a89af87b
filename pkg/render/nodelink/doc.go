// Package nodelink renders networks as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz. Nodes
// appear as boxes (neurons), house shapes (stimulators) or ellipses
// (recorders), coloured by element type unless the node's view sets a
// colour. Inhibitory connections end in a bar, connections into or out of
// recorders are dashed.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Params: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Graphviz node names are the node positions ("n0", "n1", ...), so the DOT
// source of a network is stable as long as its db serialization is.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Params includes visible parameter values in node labels.
	// When false, only the model and unit count are shown.
	Params bool

	// Rankdir is the Graphviz layout direction. Defaults to "LR".
	Rankdir string
}

var fillColors = map[string]string{
	model.ElementNeuron:     "#dbe9f6",
	model.ElementStimulator: "#fdebd0",
	model.ElementRecorder:   "#e8f6e0",
}

var shapes = map[string]string{
	model.ElementNeuron:     "box",
	model.ElementStimulator: "house",
	model.ElementRecorder:   "ellipse",
}

// ToDOT converts a network to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes whose model does not resolve are drawn with a dashed grey outline.
func ToDOT(net *network.Network, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range net.Nodes() {
		attrs := fmtNodeAttrs(n, fmtLabel(n, opts.Params))
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.Index(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range net.Connections() {
		src, tgt := c.Source(), c.Target()
		if src == nil || tgt == nil {
			continue
		}
		attrs := fmtEdgeAttrs(c, src, tgt)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", src.Index(), tgt.Index())
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", src.Index(), tgt.Index(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *network.Node, params bool) string {
	lines := []string{fmt.Sprintf("%d: %s", n.Index(), n.ModelID())}
	if n.Size() > 1 {
		lines = append(lines, fmt.Sprintf("n=%d", n.Size()))
	}
	if v := n.View(); v != nil && v.Label != "" {
		lines[0] = fmt.Sprintf("%d: %s", n.Index(), v.Label)
	}
	if rf := n.RecordFrom(); len(rf) > 0 {
		lines = append(lines, "record: "+strings.Join(rf, ", "))
	}
	if params {
		for _, p := range n.VisibleParameters() {
			lines = append(lines, fmt.Sprintf("%s: %s", p.ID(), strconv.FormatFloat(p.Value(), 'g', -1, 64)))
		}
	}
	return strings.Join(lines, "\n")
}

func fmtNodeAttrs(n *network.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	et := n.ElementType()
	if et == "" {
		return append(attrs, "style=\"rounded,dashed\"", "color=grey", "fontcolor=grey40")
	}
	if shape, ok := shapes[et]; ok && shape != "box" {
		attrs = append(attrs, "shape="+shape, "style=filled")
	}
	fill := fillColors[et]
	if v := n.View(); v != nil && v.Color != "" {
		fill = v.Color
	}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func fmtEdgeAttrs(c *network.Connection, src, tgt *network.Node) []string {
	var attrs []string
	w := c.Weight()
	if w < 0 {
		attrs = append(attrs, "arrowhead=tee", "color=\"#c0392b\"")
	}
	if w != 1 {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(w, 'g', -1, 64)))
	}
	if src.IsRecorder() || tgt.IsRecorder() {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

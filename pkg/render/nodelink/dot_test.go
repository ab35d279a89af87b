package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

func sampleNetwork(t *testing.T) *network.Network {
	t.Helper()
	net := network.New(model.Default())
	net.AddNode(network.NodeDescription{Model: "poisson_generator"})
	net.AddNode(network.NodeDescription{Model: "iaf_neuron", Size: 100})
	net.AddNode(network.NodeDescription{Model: "multimeter"})
	for _, c := range []network.ConnectionDescription{
		{Source: 0, Target: 1},
		{Source: 2, Target: 1},
	} {
		if _, err := net.AddConnection(c); err != nil {
			t.Fatalf("AddConnection: %v", err)
		}
	}
	return net
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleNetwork(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`n0 [label="0: poisson_generator", shape=house`,
		`n1 [label="1: iaf_neuron\nn=100"`,
		"shape=ellipse",
		`record: V_m`,
		"n0 -> n1;",
		"n2 -> n1 [style=dashed];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "V_th") {
		t.Error("parameters rendered without Params option")
	}
}

func TestToDOTOptions(t *testing.T) {
	net := sampleNetwork(t)
	dot := ToDOT(net, Options{Params: true, Rankdir: "TB"})

	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("rankdir option ignored")
	}
	if !strings.Contains(dot, `V_th: -55`) {
		t.Errorf("visible parameter missing:\n%s", dot)
	}
}

func TestToDOTInhibitory(t *testing.T) {
	net := sampleNetwork(t)
	if err := net.Node(0).SetWeightPolarity(network.Inhibitory); err != nil {
		t.Fatalf("SetWeightPolarity: %v", err)
	}
	dot := ToDOT(net, Options{})
	if !strings.Contains(dot, `n0 -> n1 [arrowhead=tee, color="#c0392b", label="-1"];`) {
		t.Errorf("inhibitory edge not styled:\n%s", dot)
	}
}

func TestToDOTView(t *testing.T) {
	net := sampleNetwork(t)
	if err := net.Node(1).SetView(network.View{Color: "#ff0000", Label: "exc"}); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	dot := ToDOT(net, Options{})
	if !strings.Contains(dot, `n1 [label="1: exc\nn=100", fillcolor="#ff0000"]`) {
		t.Errorf("view not applied:\n%s", dot)
	}
}

func TestToDOTUnknownModel(t *testing.T) {
	net := network.New(model.Default())
	net.AddNode(network.NodeDescription{Model: "not_installed"})
	dot := ToDOT(net, Options{})
	if !strings.Contains(dot, `style="rounded,dashed"`) {
		t.Errorf("unknown model not marked:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(network.New(model.Default()), Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed empty graph:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleNetwork(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("viewBox not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "origin shifted",
			in:   `<svg width="10pt" viewBox="0.00 0.00 120.50 80.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.50 80.00" width="120" height="80"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

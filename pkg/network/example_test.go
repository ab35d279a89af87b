package network_test

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

func ExampleNetwork_Simulation() {
	// A population of ten neurons observed by a multimeter
	net := network.New(model.Default())
	net.AddNode(network.NodeDescription{Model: "iaf_neuron", Size: 10})
	net.AddNode(network.NodeDescription{Model: "multimeter"})
	_, _ = net.AddConnection(network.ConnectionDescription{Source: 1, Target: 0})

	sim := net.Simulation()
	data, _ := json.Marshal(sim.Nodes[0])
	fmt.Println(string(data))
	fmt.Println("record_from:", sim.Nodes[1].RecordFrom)
	// Output:
	// {"model":"iaf_neuron","n":10,"element_type":"neuron","params":{"V_reset":-70,"V_th":-55,"tau_m":10}}
	// record_from: [V_m]
}

func ExampleNode_Recordables() {
	// A multimeter may only record channels all of its targets share
	net := network.New(model.Default())
	net.AddNode(network.NodeDescription{Model: "iaf_neuron"})
	net.AddNode(network.NodeDescription{Model: "iaf_cond_alpha"})
	mm := net.AddNode(network.NodeDescription{Model: "multimeter"})

	_, _ = net.AddConnection(network.ConnectionDescription{Source: 2, Target: 0})
	fmt.Println("one target:", mm.Recordables())

	_, _ = net.AddConnection(network.ConnectionDescription{Source: 2, Target: 1})
	fmt.Println("two targets:", mm.Recordables())
	// Output:
	// one target: [I_syn V_m]
	// two targets: [V_m]
}

func ExampleNetwork_DeleteNode() {
	// Deleting a node removes its connections and reindexes the rest
	net := network.New(model.Default())
	a := net.AddNode(network.NodeDescription{Model: "iaf_neuron"})
	b := net.AddNode(network.NodeDescription{Model: "iaf_neuron"})
	c := net.AddNode(network.NodeDescription{Model: "iaf_neuron"})
	_, _ = net.AddConnection(network.ConnectionDescription{Source: 0, Target: 1})
	_, _ = net.AddConnection(network.ConnectionDescription{Source: 1, Target: 2})

	_ = net.DeleteNode(b)
	fmt.Println("indices:", a.Index(), c.Index())
	fmt.Println("connections:", net.ConnectionCount())
	// Output:
	// indices: 0 1
	// connections: 0
}

// Package config decodes a declarative YAML topology document into a
// petrinet.Net, adapted from dsl.Parser's generic YAML-workflow decode
// (which produced a core/workflow.Workflow) and re-pointed at a plain
// place/transition/arc document instead of a task graph.
package config

import (
	"fmt"
	"os"

	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
	"gopkg.in/yaml.v3"
)

// PlaceDoc is one place entry in a topology YAML document.
type PlaceDoc struct {
	Name    string `yaml:"name"`
	Initial int    `yaml:"initial"`
}

// ArcDoc is one arc entry within a TransitionDoc.
type ArcDoc struct {
	Place  string `yaml:"place"`
	Weight int    `yaml:"weight"`
}

// TransitionDoc is one transition entry in a topology YAML document.
type TransitionDoc struct {
	Name    string   `yaml:"name"`
	Inputs  []ArcDoc `yaml:"inputs,omitempty"`
	Outputs []ArcDoc `yaml:"outputs,omitempty"`
}

// TopologyDoc is the root of a topology YAML document:
//
//	places:
//	  - name: "Raw Material"
//	    initial: 20
//	transitions:
//	  - name: "Load Material"
//	    inputs:
//	      - {place: "Raw Material", weight: 1}
//	    outputs:
//	      - {place: "Ready to Process", weight: 1}
type TopologyDoc struct {
	Places      []PlaceDoc      `yaml:"places"`
	Transitions []TransitionDoc `yaml:"transitions"`
}

// LoadFile reads and parses a topology YAML file from disk.
func LoadFile(path string) (*TopologyDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a topology YAML document.
func Parse(data []byte) (*TopologyDoc, error) {
	var doc TopologyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse YAML: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, fmt.Errorf("config: validate topology: %w", err)
	}
	return &doc, nil
}

// Build constructs a petrinet.Net from a validated TopologyDoc, returning
// the name->index maps a caller needs to reference places and transitions
// afterward.
func (doc *TopologyDoc) Build() (net *petrinet.Net, placeIdx map[string]int, transIdx map[string]int, err error) {
	b := petrinet.NewBuilder()

	for _, p := range doc.Places {
		b.Place(p.Name, p.Initial)
	}
	for _, t := range doc.Transitions {
		b.Transition(t.Name)
		for _, in := range t.Inputs {
			b.Arc(in.Place, t.Name, in.Weight)
		}
		for _, out := range t.Outputs {
			b.Arc(t.Name, out.Place, out.Weight)
		}
	}

	net, err = b.Done()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: build net: %w", err)
	}

	placeIdx = make(map[string]int, len(doc.Places))
	for _, p := range doc.Places {
		idx, _ := b.PlaceIndex(p.Name)
		placeIdx[p.Name] = idx
	}
	transIdx = make(map[string]int, len(doc.Transitions))
	for _, t := range doc.Transitions {
		idx, _ := b.TransitionIndex(t.Name)
		transIdx[t.Name] = idx
	}
	return net, placeIdx, transIdx, nil
}

package config

import (
	"fmt"

	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
)

// Validate ensures a topology document is internally consistent before it
// is handed to the builder: no duplicate or empty names, no arc pointing
// at an undeclared place, no transition with more than
// petrinet.MaxArcsPerDirection arcs in one direction. Adapted from
// core/workflow.Validate's map-based duplicate-id-detection idiom,
// re-pointed at places/transitions/arcs instead of tasks/resources/
// channels/gateways.
func Validate(doc *TopologyDoc) error {
	placeNames := make(map[string]struct{}, len(doc.Places))
	for _, p := range doc.Places {
		if p.Name == "" {
			return fmt.Errorf("place name cannot be empty")
		}
		if _, exists := placeNames[p.Name]; exists {
			return fmt.Errorf("duplicate place name: %s", p.Name)
		}
		if p.Initial < 0 {
			return fmt.Errorf("place %s has negative initial tokens: %d", p.Name, p.Initial)
		}
		placeNames[p.Name] = struct{}{}
	}

	transitionNames := make(map[string]struct{}, len(doc.Transitions))
	for _, t := range doc.Transitions {
		if t.Name == "" {
			return fmt.Errorf("transition name cannot be empty")
		}
		if _, exists := transitionNames[t.Name]; exists {
			return fmt.Errorf("duplicate transition name: %s", t.Name)
		}
		transitionNames[t.Name] = struct{}{}

		if len(t.Inputs) > petrinet.MaxArcsPerDirection {
			return fmt.Errorf("transition %s has %d input arcs, max is %d", t.Name, len(t.Inputs), petrinet.MaxArcsPerDirection)
		}
		if len(t.Outputs) > petrinet.MaxArcsPerDirection {
			return fmt.Errorf("transition %s has %d output arcs, max is %d", t.Name, len(t.Outputs), petrinet.MaxArcsPerDirection)
		}

		for _, in := range t.Inputs {
			if _, ok := placeNames[in.Place]; !ok {
				return fmt.Errorf("transition %s references missing input place %s", t.Name, in.Place)
			}
			if in.Weight <= 0 {
				return fmt.Errorf("transition %s input arc to %s has non-positive weight %d", t.Name, in.Place, in.Weight)
			}
		}
		for _, out := range t.Outputs {
			if _, ok := placeNames[out.Place]; !ok {
				return fmt.Errorf("transition %s references missing output place %s", t.Name, out.Place)
			}
			if out.Weight <= 0 {
				return fmt.Errorf("transition %s output arc to %s has non-positive weight %d", t.Name, out.Place, out.Weight)
			}
		}
	}

	return nil
}
package config

import "testing"

const validYAML = `
places:
  - name: "Raw Material"
    initial: 20
  - name: "Ready to Process"
    initial: 0
transitions:
  - name: "Load Material"
    inputs:
      - {place: "Raw Material", weight: 1}
    outputs:
      - {place: "Ready to Process", weight: 1}
`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	net, places, trans, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if net.NumPlaces() != 2 || net.NumTransitions() != 1 {
		t.Fatalf("got %d places, %d transitions, want 2, 1", net.NumPlaces(), net.NumTransitions())
	}

	ok, err := net.Fire(trans["Load Material"])
	if err != nil || !ok {
		t.Fatalf("Fire = %v, %v, want true, nil", ok, err)
	}
	tokens, _ := net.TokensOf(places["Ready to Process"])
	if tokens != 1 {
		t.Fatalf("Ready to Process = %d, want 1", tokens)
	}
}

func TestParseRejectsDuplicatePlaceName(t *testing.T) {
	const doc = `
places:
  - name: "A"
    initial: 0
  - name: "A"
    initial: 0
transitions: []
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse succeeded, want error for duplicate place name")
	}
}

func TestParseRejectsDanglingArc(t *testing.T) {
	const doc = `
places:
  - name: "A"
    initial: 0
transitions:
  - name: "T"
    inputs:
      - {place: "does not exist", weight: 1}
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse succeeded, want error for arc referencing unknown place")
	}
}

func TestValidateRejectsArcOverflow(t *testing.T) {
	doc := &TopologyDoc{
		Places: []PlaceDoc{{Name: "p0"}, {Name: "p1"}, {Name: "p2"}, {Name: "p3"}, {Name: "p4"}, {Name: "p5"}},
		Transitions: []TransitionDoc{{
			Name: "t",
			Inputs: []ArcDoc{
				{Place: "p0", Weight: 1}, {Place: "p1", Weight: 1}, {Place: "p2", Weight: 1},
				{Place: "p3", Weight: 1}, {Place: "p4", Weight: 1}, {Place: "p5", Weight: 1},
			},
		}},
	}
	if err := Validate(doc); err == nil {
		t.Fatal("Validate succeeded, want error for 6 input arcs on one transition")
	}
}

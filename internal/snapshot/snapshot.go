// Package snapshot implements the on-demand read-only view of the marking
// and the TCP/HTTP status endpoint that exposes it, adapted from
// original_source/status_server.c's build_status_payload and
// task_status_server.
package snapshot

import "github.com/GareArc/manufacturing-petri-net/internal/petrinet"

// Place is one entry of a Document: {"name": "...", "tokens": N}.
type Place struct {
	Name   string `json:"name"`
	Tokens int    `json:"tokens"`
}

// Document is the full snapshot body: {"places": [...]}.
type Document struct {
	Places []Place `json:"places"`
}

// Build takes an internally consistent snapshot of net (one guard scope,
// per petrinet.Net.Snapshot) and shapes it into a Document, clearing the
// dirty flag as a side effect, mirroring build_status_payload's clear of
// status_dirty after it has read every place.
func Build(net *petrinet.Net) Document {
	counts := net.Snapshot()
	places := make([]Place, len(counts))
	for i, pc := range counts {
		places[i] = Place{Name: pc.Name, Tokens: pc.Tokens}
	}
	return Document{Places: places}
}

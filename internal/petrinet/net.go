// Package petrinet implements a concurrent, bounded, weighted Place/
// Transition Petri-net kernel: an immutable-after-setup topology (places,
// transitions, weighted arcs) driving a single mutable marking, with atomic
// all-or-nothing transition firing guarded by one net-wide mutex.
package petrinet

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultMaxPlaces and DefaultMaxTransitions are the capacities a Net gets
// from NewNet. A manufacturing line topology needs at least 15 places and
// 20 transitions; 64 of each comfortably covers that with room for an
// operator-supplied topology to grow.
const (
	DefaultMaxPlaces      = 64
	DefaultMaxTransitions = 64
)

// Observer receives notifications of kernel activity. Implementations must
// not block and must not call back into the Net that invoked them. A nil
// Observer is never invoked; see Net.SetObserver.
type Observer interface {
	// OnFire is called, outside the marking guard, after a transition has
	// fired successfully.
	OnFire(transitionIdx int, name string)
	// OnReject is called, outside the marking guard, after a fire attempt
	// returned false because the transition was not enabled.
	OnReject(transitionIdx int, name string)
}

// Net is the collection of places and transitions that make up one Petri
// net. The topology (places, transitions, arcs) is fixed once Done has been
// called; only token counts change after that point. The zero value is not
// usable, construct with NewNet or Builder.
type Net struct {
	mu     sync.Mutex
	places []place
	trans  []transition
	frozen bool

	maxPlaces      int
	maxTransitions int

	dirty atomic.Bool

	obsMu sync.RWMutex
	obs   Observer
}

// NewNet creates an empty net with the default capacities. Use Builder for
// a fluent construction API, or call AddPlace/AddTransition/AddInputArc/
// AddOutputArc directly during setup, then Done.
func NewNet() *Net {
	return NewNetWithCapacity(DefaultMaxPlaces, DefaultMaxTransitions)
}

// NewNetWithCapacity creates an empty net with explicit place/transition
// capacities, for callers that need bounds other than the defaults.
func NewNetWithCapacity(maxPlaces, maxTransitions int) *Net {
	return &Net{
		maxPlaces:      maxPlaces,
		maxTransitions: maxTransitions,
	}
}

// SetObserver installs (or clears, with nil) the Net's activity observer.
// Safe to call at any time, including concurrently with firing.
func (n *Net) SetObserver(obs Observer) {
	n.obsMu.Lock()
	defer n.obsMu.Unlock()
	n.obs = obs
}

func (n *Net) notifyFire(idx int, name string) {
	n.obsMu.RLock()
	obs := n.obs
	n.obsMu.RUnlock()
	if obs != nil {
		obs.OnFire(idx, name)
	}
}

func (n *Net) notifyReject(idx int, name string) {
	n.obsMu.RLock()
	obs := n.obs
	n.obsMu.RUnlock()
	if obs != nil {
		obs.OnReject(idx, name)
	}
}

// AddPlace registers a place with the given display name (truncated to 31
// characters) and initial token count, returning its stable index. Valid
// only during setup, before Done is called.
func (n *Net) AddPlace(name string, initialTokens int) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return 0, ErrSetupFrozen
	}
	if len(n.places) >= n.maxPlaces {
		return 0, fmt.Errorf("%w: place %q (max %d)", ErrCapacityExceeded, name, n.maxPlaces)
	}
	if initialTokens < 0 {
		return 0, fmt.Errorf("%w: place %q initial tokens", ErrNegativeWeight, name)
	}

	idx := len(n.places)
	n.places = append(n.places, place{name: truncateName(name), tokens: initialTokens})
	return idx, nil
}

// AddTransition registers a transition with the given display name
// (truncated to 31 characters), returning its stable index. Valid only
// during setup, before Done is called.
func (n *Net) AddTransition(name string) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return 0, ErrSetupFrozen
	}
	if len(n.trans) >= n.maxTransitions {
		return 0, fmt.Errorf("%w: transition %q (max %d)", ErrCapacityExceeded, name, n.maxTransitions)
	}

	idx := len(n.trans)
	n.trans = append(n.trans, transition{name: truncateName(name)})
	return idx, nil
}

// AddInputArc adds a weighted input arc (place -> transition). Valid only
// during setup.
func (n *Net) AddInputArc(t, p, weight int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addArcLocked(t, p, weight, true)
}

// AddOutputArc adds a weighted output arc (transition -> place). Valid only
// during setup.
func (n *Net) AddOutputArc(t, p, weight int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addArcLocked(t, p, weight, false)
}

func (n *Net) addArcLocked(t, p, weight int, input bool) error {
	if n.frozen {
		return ErrSetupFrozen
	}
	if t < 0 || t >= len(n.trans) {
		return fmt.Errorf("%w: transition index %d", ErrUnknownTransition, t)
	}
	if p < 0 || p >= len(n.places) {
		return fmt.Errorf("%w: place index %d", ErrUnknownPlace, p)
	}
	if weight <= 0 {
		return fmt.Errorf("%w: arc %d<->%d", ErrNegativeWeight, t, p)
	}

	tr := &n.trans[t]
	if input {
		if len(tr.inputs) >= MaxArcsPerDirection {
			return fmt.Errorf("%w: transition %q input arcs", ErrArcOverflow, tr.name)
		}
		tr.inputs = append(tr.inputs, arc{place: p, weight: weight})
		return nil
	}
	if len(tr.outputs) >= MaxArcsPerDirection {
		return fmt.Errorf("%w: transition %q output arcs", ErrArcOverflow, tr.name)
	}
	tr.outputs = append(tr.outputs, arc{place: p, weight: weight})
	return nil
}

// Done freezes the topology: after Done returns, no place, transition or
// arc may be added. Calling Done more than once is a no-op.
func (n *Net) Done() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frozen = true
}

// NumPlaces returns the number of registered places.
func (n *Net) NumPlaces() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.places)
}

// NumTransitions returns the number of registered transitions.
func (n *Net) NumTransitions() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.trans)
}

// PlaceName returns the display name of place p.
func (n *Net) PlaceName(p int) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if p < 0 || p >= len(n.places) {
		return "", fmt.Errorf("%w: %d", ErrUnknownPlace, p)
	}
	return n.places[p].name, nil
}

// TransitionName returns the display name of transition t.
func (n *Net) TransitionName(t int) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t < 0 || t >= len(n.trans) {
		return "", fmt.Errorf("%w: %d", ErrUnknownTransition, t)
	}
	return n.trans[t].name, nil
}

// InputArcs returns a copy of transition t's input arcs as (place, weight)
// pairs, in registration order.
func (n *Net) InputArcs(t int) ([][2]int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t < 0 || t >= len(n.trans) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransition, t)
	}
	return arcsToPairs(n.trans[t].inputs), nil
}

// OutputArcs returns a copy of transition t's output arcs as (place, weight)
// pairs, in registration order.
func (n *Net) OutputArcs(t int) ([][2]int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t < 0 || t >= len(n.trans) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransition, t)
	}
	return arcsToPairs(n.trans[t].outputs), nil
}

func arcsToPairs(arcs []arc) [][2]int {
	pairs := make([][2]int, len(arcs))
	for i, a := range arcs {
		pairs[i] = [2]int{a.place, a.weight}
	}
	return pairs
}

// TokensOf returns a consistent instantaneous read of place p's token
// count. The returned value corresponds to some real past state of that
// place; it is never a torn read, but it may be stale the instant it is
// returned.
func (n *Net) TokensOf(p int) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if p < 0 || p >= len(n.places) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPlace, p)
	}
	return n.places[p].tokens, nil
}

// IsEnabled reports whether every input arc of transition t is currently
// satisfied. This is a snapshot test: the result may become stale the
// instant it is returned, since nothing prevents another fire or injection
// from changing the marking immediately afterward. Callers that need the
// enablement check and the mutation to be atomic must rely on Fire's own
// internal re-check instead of composing IsEnabled with a later Fire.
func (n *Net) IsEnabled(t int) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t < 0 || t >= len(n.trans) {
		return false, fmt.Errorf("%w: %d", ErrUnknownTransition, t)
	}
	return n.trans[t].enabledLocked(n.places), nil
}

// Fire attempts to execute transition t atomically. It acquires the
// marking guard, re-evaluates enablement under the guard, and, only if
// still enabled, debits every input arc and credits every output arc
// before releasing the guard. It returns false, with the marking
// unchanged, if t was not enabled at the moment the guard was acquired.
// No concurrent observer can ever see inputs debited but outputs not yet
// credited: both passes complete inside the same critical section as the
// enablement re-check.
func (n *Net) Fire(t int) (bool, error) {
	n.mu.Lock()
	if t < 0 || t >= len(n.trans) {
		n.mu.Unlock()
		return false, fmt.Errorf("%w: %d", ErrUnknownTransition, t)
	}

	tr := &n.trans[t]
	if !tr.enabledLocked(n.places) {
		n.mu.Unlock()
		n.notifyReject(t, tr.name)
		return false, nil
	}

	for _, a := range tr.inputs {
		n.places[a.place].tokens -= a.weight
	}
	for _, a := range tr.outputs {
		n.places[a.place].tokens += a.weight
	}
	name := tr.name
	n.dirty.Store(true)
	n.mu.Unlock()

	n.notifyFire(t, name)
	return true, nil
}

// Inject adds k tokens to place p, outside of any transition firing. This
// is the kernel side of C7 External Input (e.g. an operator raw-material
// top-up). k defaults to 1 at the caller's discretion; Inject itself
// requires k > 0.
func (n *Net) Inject(p, k int) error {
	if k <= 0 {
		return fmt.Errorf("%w: inject %d", ErrNegativeWeight, k)
	}
	n.mu.Lock()
	if p < 0 || p >= len(n.places) {
		n.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownPlace, p)
	}
	n.places[p].tokens += k
	n.dirty.Store(true)
	n.mu.Unlock()
	return nil
}

// Dirty reports whether the marking has changed since the last call to
// ClearDirty (or since net creation).
func (n *Net) Dirty() bool {
	return n.dirty.Load()
}

// ClearDirty clears the dirty flag and reports whether it was set.
func (n *Net) ClearDirty() bool {
	return n.dirty.Swap(false)
}

// PlaceCount is one row of a Snapshot: a place's name and its token count
// at the instant the snapshot was taken.
type PlaceCount struct {
	Name   string
	Tokens int
}

// Snapshot returns an internally consistent read-only view of every
// place's token count, ordered by place index, taken within a single
// guard scope. Taking a snapshot clears the dirty flag.
func (n *Net) Snapshot() []PlaceCount {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]PlaceCount, len(n.places))
	for i, p := range n.places {
		out[i] = PlaceCount{Name: p.name, Tokens: p.tokens}
	}
	n.dirty.Store(false)
	return out
}

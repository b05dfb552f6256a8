package petrinet

// Builder provides a fluent construction API for a Net, in the spirit of
// the petri.Build().Place(...).Transition(...).Arc(...).Done() idiom. It
// accumulates the first error encountered so a long chain can be written
// without checking every call; Err (or Done) surfaces it.
//
// A Builder names places and transitions as it goes; Arc resolves a
// (from, to) pair by name, attaching to whichever endpoint is a
// transition. Arc looks the from name up among places first and among
// transitions second, so when a place and a transition share a display
// name, Arc treats that name as the place. Registering the same name twice
// within one kind is not rejected; the later registration's index is the
// one Arc, PlaceIndex and TransitionIndex resolve.
type Builder struct {
	net   *Net
	names map[string]int // place name -> index
	trIdx map[string]int // transition name -> index
	err   error
}

// NewBuilder starts a fluent build of a fresh Net using the default
// capacities.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(DefaultMaxPlaces, DefaultMaxTransitions)
}

// NewBuilderWithCapacity starts a fluent build of a fresh Net with
// explicit capacities.
func NewBuilderWithCapacity(maxPlaces, maxTransitions int) *Builder {
	return &Builder{
		net:   NewNetWithCapacity(maxPlaces, maxTransitions),
		names: make(map[string]int),
		trIdx: make(map[string]int),
	}
}

// Place registers a place with the given initial token count.
func (b *Builder) Place(name string, initial int) *Builder {
	if b.err != nil {
		return b
	}
	idx, err := b.net.AddPlace(name, initial)
	if err != nil {
		b.err = err
		return b
	}
	b.names[name] = idx
	return b
}

// Transition registers a transition.
func (b *Builder) Transition(name string) *Builder {
	if b.err != nil {
		return b
	}
	idx, err := b.net.AddTransition(name)
	if err != nil {
		b.err = err
		return b
	}
	b.trIdx[name] = idx
	return b
}

// Arc adds a weighted arc between a previously-registered place and
// transition, inferring direction from which name was registered as
// which kind: placeName -> transitionName is an input arc, transitionName
// -> placeName is an output arc.
func (b *Builder) Arc(from, to string, weight int) *Builder {
	if b.err != nil {
		return b
	}

	if pIdx, isPlace := b.names[from]; isPlace {
		tIdx, ok := b.trIdx[to]
		if !ok {
			b.err = errUnknownName(to)
			return b
		}
		if err := b.net.AddInputArc(tIdx, pIdx, weight); err != nil {
			b.err = err
		}
		return b
	}

	if tIdx, isTrans := b.trIdx[from]; isTrans {
		pIdx, ok := b.names[to]
		if !ok {
			b.err = errUnknownName(to)
			return b
		}
		if err := b.net.AddOutputArc(tIdx, pIdx, weight); err != nil {
			b.err = err
		}
		return b
	}

	b.err = errUnknownName(from)
	return b
}

func errUnknownName(name string) error {
	return &unknownNameError{name: name}
}

type unknownNameError struct{ name string }

func (e *unknownNameError) Error() string {
	return "petrinet: builder references unknown name " + e.name
}

// Err returns the first error encountered during building, if any.
func (b *Builder) Err() error {
	return b.err
}

// PlaceIndex returns the index assigned to a registered place name.
func (b *Builder) PlaceIndex(name string) (int, bool) {
	idx, ok := b.names[name]
	return idx, ok
}

// TransitionIndex returns the index assigned to a registered transition
// name.
func (b *Builder) TransitionIndex(name string) (int, bool) {
	idx, ok := b.trIdx[name]
	return idx, ok
}

// Done freezes and returns the built Net, along with the first error
// encountered (if any). On error, the returned Net is still usable for
// inspection but should not be trusted as complete.
func (b *Builder) Done() (*Net, error) {
	b.net.Done()
	return b.net, b.err
}

package petrinet

import "errors"

// Sentinel errors returned by the net builder and kernel. Callers should
// compare with errors.Is, since most are wrapped with the offending name.
var (
	// ErrCapacityExceeded is returned when a place or transition is added
	// beyond the net's configured capacity.
	ErrCapacityExceeded = errors.New("petrinet: capacity exceeded")

	// ErrArcOverflow is returned when a transition would gain more than
	// MaxArcsPerDirection input or output arcs. The reference this kernel
	// is modeled on silently dropped arcs past the fifth; this kernel
	// refuses instead.
	ErrArcOverflow = errors.New("petrinet: too many arcs in one direction")

	// ErrUnknownPlace is returned when an operation references a place
	// index outside [0, NumPlaces).
	ErrUnknownPlace = errors.New("petrinet: unknown place")

	// ErrUnknownTransition is returned when an operation references a
	// transition index outside [0, NumTransitions).
	ErrUnknownTransition = errors.New("petrinet: unknown transition")

	// ErrSetupFrozen is returned when a builder method is called after
	// the net has been frozen by Done.
	ErrSetupFrozen = errors.New("petrinet: net is frozen, setup is over")

	// ErrNegativeWeight is returned when an arc or injection weight is
	// not a positive integer.
	ErrNegativeWeight = errors.New("petrinet: weight must be positive")
)

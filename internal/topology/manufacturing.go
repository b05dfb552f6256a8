// Package topology defines the canonical manufacturing-line Petri net: load
// -> process -> assemble -> QC1 -> paint?/skip -> QC2 -> individual pack ->
// bulk pack, plus a rework loop, transcribed from
// original_source/manufacturing_process.c into internal/petrinet.Builder
// calls.
package topology

import "github.com/GareArc/manufacturing-petri-net/internal/petrinet"

// Place names, in registration order. Registration order defines each
// place's stable index, which is also the order places appear in a
// snapshot.
const (
	RawMaterial             = "Raw Material"
	ReadyToProcess          = "Ready to Process"
	Processing              = "Processing"
	Processed               = "Processed"
	ReadyToAssemble         = "Ready to Assemble"
	Assembled               = "Assembled"
	QCActive1               = "QC Active 1"
	PostQC1Buffer           = "Passed QC1 / Decision"
	ReadyForIndividualPack  = "Ready for Individual Package"
	IndividuallyPackaged    = "Individually Packaged"
	FinalPackaged           = "Final Packaged"
	Painted                 = "Painted"
	QCActive2               = "QC Active 2"
	Worker                  = "Worker"
	ReworkBin               = "Rework Bin"
)

// Transition names, in registration order.
const (
	LoadMaterial      = "Load Material"
	StartProcessing   = "Start Processing"
	FinishProcessing  = "Finish Processing"
	StartAssembly     = "Start Assembly"
	FinishAssembly    = "Finish Assembly"
	StartQC1          = "Start QC 1"
	PassQC1           = "Pass QC 1"
	FailQC1           = "Fail QC 1"
	SelectToPaint     = "Select to Paint"
	SkipPaint         = "Skip Paint"
	StartQC2          = "Start QC 2"
	PassQC2           = "Pass QC 2"
	FailQC2           = "Fail QC 2"
	IndividualPackage = "Individual Package"
	BulkPackage       = "Bulk Package"
	ReworkProcess     = "Rework Process"
)

// InitialWorkerTokens is the reference Worker place's starting count. This
// topology has the rework transition also consume and return a Worker
// token, so every concurrency-limited activity (QC1, QC2, rework) competes
// for the same pool of 3 tokens.
const InitialWorkerTokens = 3

// InitialRawMaterial is the reference Raw Material place's starting count.
const InitialRawMaterial = 20

// Indices maps every transition name this package declares to the stable
// index it was assigned during Build, so the worker constructors
// (worker.MaterialLoader, worker.QC, ...) never need to guess an index or
// re-resolve a name at runtime.
type Indices struct {
	byTransition map[string]int
	byPlace      map[string]int
}

// Transition returns the stable index of a transition registered by Build.
// It panics if name was not registered, a programmer error, since every
// name this package's workers reference is one of the constants above.
func (ix Indices) Transition(name string) int {
	idx, ok := ix.byTransition[name]
	if !ok {
		panic("topology: unknown transition " + name)
	}
	return idx
}

// Place returns the stable index of a place registered by Build.
func (ix Indices) Place(name string) int {
	idx, ok := ix.byPlace[name]
	if !ok {
		panic("topology: unknown place " + name)
	}
	return idx
}

// Build constructs the canonical manufacturing net and freezes it. The
// returned error is non-nil only if the topology itself is malformed,
// which would indicate a bug in this function, not in caller input.
func Build() (*petrinet.Net, Indices, error) {
	b := petrinet.NewBuilder()

	b.Place(RawMaterial, InitialRawMaterial).
		Place(ReadyToProcess, 0).
		Place(Processing, 0).
		Place(Processed, 0).
		Place(ReadyToAssemble, 0).
		Place(Assembled, 0).
		Place(QCActive1, 0).
		Place(PostQC1Buffer, 0).
		Place(ReadyForIndividualPack, 0).
		Place(IndividuallyPackaged, 0).
		Place(FinalPackaged, 0).
		Place(Painted, 0).
		Place(QCActive2, 0).
		Place(Worker, InitialWorkerTokens).
		Place(ReworkBin, 0)

	b.Transition(LoadMaterial).
		Arc(RawMaterial, LoadMaterial, 1).
		Arc(LoadMaterial, ReadyToProcess, 1)

	b.Transition(StartProcessing).
		Arc(ReadyToProcess, StartProcessing, 1).
		Arc(StartProcessing, Processing, 1)

	b.Transition(FinishProcessing).
		Arc(Processing, FinishProcessing, 1).
		Arc(FinishProcessing, Processed, 1)

	// Assembly consumes 2 Processed and produces 2 ReadyToAssemble;
	// FinishAssembly consumes those 2 and produces 1 Assembled.
	b.Transition(StartAssembly).
		Arc(Processed, StartAssembly, 2).
		Arc(StartAssembly, ReadyToAssemble, 2)

	b.Transition(FinishAssembly).
		Arc(ReadyToAssemble, FinishAssembly, 2).
		Arc(FinishAssembly, Assembled, 1)

	b.Transition(StartQC1).
		Arc(Assembled, StartQC1, 1).
		Arc(Worker, StartQC1, 1).
		Arc(StartQC1, QCActive1, 1)

	b.Transition(PassQC1).
		Arc(QCActive1, PassQC1, 1).
		Arc(PassQC1, PostQC1Buffer, 1).
		Arc(PassQC1, Worker, 1)

	b.Transition(FailQC1).
		Arc(QCActive1, FailQC1, 1).
		Arc(FailQC1, ReworkBin, 1).
		Arc(FailQC1, Worker, 1)

	b.Transition(SelectToPaint).
		Arc(PostQC1Buffer, SelectToPaint, 1).
		Arc(SelectToPaint, Painted, 1)

	b.Transition(SkipPaint).
		Arc(PostQC1Buffer, SkipPaint, 1).
		Arc(SkipPaint, ReadyForIndividualPack, 1)

	b.Transition(StartQC2).
		Arc(Painted, StartQC2, 1).
		Arc(Worker, StartQC2, 1).
		Arc(StartQC2, QCActive2, 1)

	b.Transition(PassQC2).
		Arc(QCActive2, PassQC2, 1).
		Arc(PassQC2, ReadyForIndividualPack, 1).
		Arc(PassQC2, Worker, 1)

	b.Transition(FailQC2).
		Arc(QCActive2, FailQC2, 1).
		Arc(FailQC2, ReworkBin, 1).
		Arc(FailQC2, Worker, 1)

	b.Transition(IndividualPackage).
		Arc(ReadyForIndividualPack, IndividualPackage, 1).
		Arc(IndividualPackage, IndividuallyPackaged, 1)

	b.Transition(BulkPackage).
		Arc(IndividuallyPackaged, BulkPackage, 5).
		Arc(BulkPackage, FinalPackaged, 1)

	// Rework consumes a Worker token like the other QC-stage activities
	// and returns it, so it competes for the same limited pool.
	b.Transition(ReworkProcess).
		Arc(ReworkBin, ReworkProcess, 1).
		Arc(Worker, ReworkProcess, 1).
		Arc(ReworkProcess, Processed, 1).
		Arc(ReworkProcess, Worker, 1)

	ix := Indices{
		byPlace:      make(map[string]int, len(allPlaces)),
		byTransition: make(map[string]int, len(allTransitions)),
	}
	for _, name := range allPlaces {
		if idx, ok := b.PlaceIndex(name); ok {
			ix.byPlace[name] = idx
		}
	}
	for _, name := range allTransitions {
		if idx, ok := b.TransitionIndex(name); ok {
			ix.byTransition[name] = idx
		}
	}

	net, err := b.Done()
	return net, ix, err
}

var allPlaces = []string{
	RawMaterial, ReadyToProcess, Processing, Processed, ReadyToAssemble,
	Assembled, QCActive1, PostQC1Buffer, ReadyForIndividualPack,
	IndividuallyPackaged, FinalPackaged, Painted, QCActive2, Worker,
	ReworkBin,
}

var allTransitions = []string{
	LoadMaterial, StartProcessing, FinishProcessing, StartAssembly,
	FinishAssembly, StartQC1, PassQC1, FailQC1, SelectToPaint, SkipPaint,
	StartQC2, PassQC2, FailQC2, IndividualPackage, BulkPackage,
	ReworkProcess,
}

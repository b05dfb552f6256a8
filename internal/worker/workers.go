package worker

import (
	"context"
	"time"

	"github.com/GareArc/manufacturing-petri-net/internal/console"
	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
	"github.com/GareArc/manufacturing-petri-net/internal/rng"
	"github.com/GareArc/manufacturing-petri-net/internal/topology"
)

// Timings holds every cadence, in-progress duration and probabilistic
// threshold the reference workers use, carried over as field defaults from
// original_source/tasks.c's hardcoded constants (pdMS_TO_TICKS(800), "30%
// chance", etc.) but made overridable, as configuration rather than
// something only a recompile can change.
type Timings struct {
	MaterialLoaderCadence time.Duration
	ProcessorCadence      time.Duration
	ProcessingDuration    time.Duration
	AssemblerCadence      time.Duration
	AssemblyDuration      time.Duration
	PainterCadence        time.Duration
	PaintDuration         time.Duration
	QCBusyCadence         time.Duration
	QCIdleCadence         time.Duration
	QCDuration            time.Duration
	ReworkerCadence       time.Duration
	ReworkDuration        time.Duration
	PackagerBusyCadence   time.Duration
	PackagerIdleCadence   time.Duration

	// PaintChancePercent is the probability (0-100) the painter/router
	// selects an item for custom paint rather than skipping it.
	PaintChancePercent int
	// FailChancePercent is the probability (0-100) a QC check fails.
	FailChancePercent int
}

// DefaultTimings reproduces the reference topology's cadences exactly.
func DefaultTimings() Timings {
	return Timings{
		MaterialLoaderCadence: 800 * time.Millisecond,
		ProcessorCadence:      300 * time.Millisecond,
		ProcessingDuration:    1500 * time.Millisecond,
		AssemblerCadence:      300 * time.Millisecond,
		AssemblyDuration:      1200 * time.Millisecond,
		PainterCadence:        400 * time.Millisecond,
		PaintDuration:         1500 * time.Millisecond,
		QCBusyCadence:         200 * time.Millisecond,
		QCIdleCadence:         500 * time.Millisecond,
		QCDuration:            1000 * time.Millisecond,
		ReworkerCadence:       1000 * time.Millisecond,
		ReworkDuration:        2500 * time.Millisecond,
		PackagerBusyCadence:   300 * time.Millisecond,
		PackagerIdleCadence:   600 * time.Millisecond,
		PaintChancePercent:    30,
		FailChancePercent:     5,
	}
}

// MaterialLoader drives LoadMaterial unconditionally, on a fixed cadence.
// Grounded on original_source/tasks.c's task_material_loader.
func MaterialLoader(net *petrinet.Net, ix topology.Indices, tm Timings) Step {
	t := ix.Transition(topology.LoadMaterial)
	return func(ctx context.Context) time.Duration {
		if ok, _ := net.Fire(t); ok {
			console.Printf(console.Cyan, "[Material Loader] Loaded raw material -> Ready to Process\n")
		}
		return tm.MaterialLoaderCadence
	}
}

// Processor drives StartProcessing, holds the token in Processing for
// ProcessingDuration, then fires FinishProcessing. Grounded on
// original_source/tasks.c's task_processor.
func Processor(net *petrinet.Net, ix topology.Indices, tm Timings) Step {
	start := ix.Transition(topology.StartProcessing)
	finish := ix.Transition(topology.FinishProcessing)
	count := 0
	return func(ctx context.Context) time.Duration {
		if ok, _ := net.Fire(start); ok {
			count++
			console.Printf(console.Blue, "[Processor] Started processing item #%d\n", count)
			sleep(ctx, tm.ProcessingDuration)
			if ok, _ := net.Fire(finish); ok {
				console.Printf(console.Blue, "[Processor] Finished processing item #%d\n", count)
			}
		}
		return tm.ProcessorCadence
	}
}

// Assembler drives StartAssembly (which needs 2 Processed tokens), holds
// ReadyToAssemble for AssemblyDuration, then fires FinishAssembly.
// Grounded on original_source/tasks.c's task_assembler.
func Assembler(net *petrinet.Net, ix topology.Indices, tm Timings) Step {
	start := ix.Transition(topology.StartAssembly)
	finish := ix.Transition(topology.FinishAssembly)
	count := 0
	return func(ctx context.Context) time.Duration {
		if ok, _ := net.Fire(start); ok {
			count++
			console.Printf(console.Magenta, "[Assembler] Started assembly #%d (combining 2 processed items)\n", count)
			sleep(ctx, tm.AssemblyDuration)
			if ok, _ := net.Fire(finish); ok {
				console.Printf(console.Magenta, "[Assembler] Finished assembly #%d\n", count)
			}
		}
		return tm.AssemblerCadence
	}
}

// PainterRouter routes a post-QC1 item to paint or skip. It checks
// enablement once, makes the paint/skip decision, and fires, never
// re-checking a stale enabledness snapshot after a delay: the TOCTOU fix
// original_source/tasks.c's "FIXED VERSION" comment on task_painter_router
// documents: the paint duration only elapses after SelectToPaint has
// already fired and the token is held in Painted.
func PainterRouter(net *petrinet.Net, ix topology.Indices, r *rng.Source, tm Timings) Step {
	selectPaint := ix.Transition(topology.SelectToPaint)
	skipPaint := ix.Transition(topology.SkipPaint)
	count := 0
	return func(ctx context.Context) time.Duration {
		if enabled, _ := net.IsEnabled(selectPaint); enabled {
			if r.Below(tm.PaintChancePercent) {
				if ok, _ := net.Fire(selectPaint); ok {
					count++
					console.Printf(console.Magenta, "[Router] Item #%d selected for custom paint.\n", count)
					sleep(ctx, tm.PaintDuration)
					console.Printf(console.Magenta, "[Router] Item #%d finished painting -> Waiting for QC2.\n", count)
				} else {
					console.Printf(console.Red, "[Router] ERROR: Failed to select item for painting\n")
				}
			} else if enabled, _ := net.IsEnabled(skipPaint); enabled {
				if ok, _ := net.Fire(skipPaint); ok {
					console.Printf(console.Cyan, "[Router] Item skipped paint -> Direct to Packaging.\n")
				} else {
					console.Printf(console.Red, "[Router] ERROR: Failed to skip painting\n")
				}
			}
		}
		return tm.PainterCadence
	}
}

// QC drives both QC stages with QC2 given priority over QC1 whenever both
// are enabled. The priority rule is resolved entirely inside the worker,
// the kernel itself stays priority-free. Grounded on
// original_source/tasks.c's task_quality_control.
func QC(net *petrinet.Net, ix topology.Indices, r *rng.Source, tm Timings) Step {
	startQC1 := ix.Transition(topology.StartQC1)
	passQC1 := ix.Transition(topology.PassQC1)
	failQC1 := ix.Transition(topology.FailQC1)
	startQC2 := ix.Transition(topology.StartQC2)
	passQC2 := ix.Transition(topology.PassQC2)
	failQC2 := ix.Transition(topology.FailQC2)
	count := 0

	return func(ctx context.Context) time.Duration {
		start, pass, fail := -1, -1, -1

		if enabled, _ := net.IsEnabled(startQC2); enabled {
			start, pass, fail = startQC2, passQC2, failQC2
		} else if enabled, _ := net.IsEnabled(startQC1); enabled {
			start, pass, fail = startQC1, passQC1, failQC1
		}

		if start < 0 {
			return tm.QCIdleCadence
		}

		if ok, _ := net.Fire(start); !ok {
			console.Printf(console.Red, "[QC Worker] ERROR: Failed to start QC check\n")
			return tm.QCIdleCadence
		}

		count++
		console.Printf(console.Yellow, "[QC Worker] Performing check #%d...\n", count)
		sleep(ctx, tm.QCDuration)

		result := pass
		if r.Below(tm.FailChancePercent) {
			result = fail
		}

		if ok, _ := net.Fire(result); !ok {
			console.Printf(console.Red, "[QC Worker] ERROR: Failed to complete QC check #%d\n", count)
			return tm.QCBusyCadence
		}

		if result == fail {
			console.Printf(console.Red, "[QC Worker] Check #%d FAILED -> Rework Bin\n", count)
		} else {
			console.Printf(console.Green, "[QC Worker] Check #%d PASSED -> Next Stage\n", count)
		}
		return tm.QCBusyCadence
	}
}

// Reworker drives ReworkProcess unconditionally, then sleeps for
// ReworkDuration. ReworkProcess moves the item to Processed and returns its
// Worker token within the same firing, so neither token is held while the
// sleep elapses. Grounded on original_source/tasks.c's task_reworker.
func Reworker(net *petrinet.Net, ix topology.Indices, tm Timings) Step {
	t := ix.Transition(topology.ReworkProcess)
	count := 0
	return func(ctx context.Context) time.Duration {
		if ok, _ := net.Fire(t); ok {
			count++
			console.Printf(console.Blue, "[Reworker] Started rework #%d -> Back to Processed\n", count)
			sleep(ctx, tm.ReworkDuration)
			console.Printf(console.Blue, "[Reworker] Finished rework #%d\n", count)
		}
		return tm.ReworkerCadence
	}
}

// Packager prefers BulkPackage (5 Individually Packaged -> 1 Final
// Packaged) over IndividualPackage, the first that fires winning.
// Grounded on original_source/tasks.c's task_packager.
func Packager(net *petrinet.Net, ix topology.Indices, tm Timings) Step {
	bulk := ix.Transition(topology.BulkPackage)
	individual := ix.Transition(topology.IndividualPackage)
	bulkCount, individualCount := 0, 0

	return func(ctx context.Context) time.Duration {
		if ok, _ := net.Fire(bulk); ok {
			bulkCount++
			console.Printf(console.Green, "[Packager] BULK PACKAGED unit #%d (5 individual units combined) -> READY FOR SHIPMENT\n", bulkCount)
			return tm.PackagerBusyCadence
		}
		if ok, _ := net.Fire(individual); ok {
			individualCount++
			console.Printf(console.Blue, "[Packager] Individually packaged unit #%d. Waiting for 5 to form a bulk package...\n", individualCount)
			return tm.PackagerBusyCadence
		}
		return tm.PackagerIdleCadence
	}
}

package worker

import (
	"context"
	"testing"
	"time"

	"github.com/GareArc/manufacturing-petri-net/internal/rng"
	"github.com/GareArc/manufacturing-petri-net/internal/topology"
)

func fastTimings() Timings {
	tm := DefaultTimings()
	tm.MaterialLoaderCadence = time.Millisecond
	tm.ProcessorCadence = time.Millisecond
	tm.ProcessingDuration = time.Millisecond
	tm.AssemblerCadence = time.Millisecond
	tm.AssemblyDuration = time.Millisecond
	tm.PainterCadence = time.Millisecond
	tm.PaintDuration = time.Millisecond
	tm.QCBusyCadence = time.Millisecond
	tm.QCIdleCadence = time.Millisecond
	tm.QCDuration = time.Millisecond
	tm.ReworkerCadence = time.Millisecond
	tm.ReworkDuration = time.Millisecond
	tm.PackagerBusyCadence = time.Millisecond
	tm.PackagerIdleCadence = time.Millisecond
	return tm
}

func TestPackagerPrefersBulkOverIndividual(t *testing.T) {
	net, ix, err := topology.Build()
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	if err := net.Inject(ix.Place(topology.IndividuallyPackaged), 5); err != nil {
		t.Fatalf("inject: %v", err)
	}

	step := Packager(net, ix, fastTimings())
	step(context.Background())

	ip, _ := net.TokensOf(ix.Place(topology.IndividuallyPackaged))
	fp, _ := net.TokensOf(ix.Place(topology.FinalPackaged))
	if ip != 0 || fp != 1 {
		t.Fatalf("got individually_packaged=%d final_packaged=%d, want 0, 1 (bulk should have fired)", ip, fp)
	}
}

func TestPackagerFallsBackToIndividual(t *testing.T) {
	net, ix, err := topology.Build()
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	if err := net.Inject(ix.Place(topology.ReadyForIndividualPack), 1); err != nil {
		t.Fatalf("inject: %v", err)
	}

	step := Packager(net, ix, fastTimings())
	step(context.Background())

	ip, _ := net.TokensOf(ix.Place(topology.IndividuallyPackaged))
	if ip != 1 {
		t.Fatalf("individually_packaged = %d, want 1 (individual package should have fired)", ip)
	}
}

func TestQCPrefersQC2OverQC1(t *testing.T) {
	net, ix, err := topology.Build()
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	// Make both QC1 and QC2 simultaneously enabled.
	if err := net.Inject(ix.Place(topology.Assembled), 1); err != nil {
		t.Fatalf("inject assembled: %v", err)
	}
	if err := net.Inject(ix.Place(topology.Painted), 1); err != nil {
		t.Fatalf("inject painted: %v", err)
	}

	// One step runs the chosen check's whole start -> wait -> pass/fail
	// cycle, so the branch taken shows in which input token was consumed:
	// QC2 takes the Painted token, QC1 would take the Assembled one.
	r := rng.New(1)
	step := QC(net, ix, r, fastTimings())
	step(context.Background())

	painted, _ := net.TokensOf(ix.Place(topology.Painted))
	assembled, _ := net.TokensOf(ix.Place(topology.Assembled))
	if painted != 0 {
		t.Fatalf("Painted = %d, want 0 (QC2 must be preferred when both are enabled)", painted)
	}
	if assembled != 1 {
		t.Fatalf("Assembled = %d, want 1 (QC1 must not start while QC2 is enabled)", assembled)
	}
}

func TestMaterialLoaderFires(t *testing.T) {
	net, ix, err := topology.Build()
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	before, _ := net.TokensOf(ix.Place(topology.RawMaterial))

	step := MaterialLoader(net, ix, fastTimings())
	step(context.Background())

	after, _ := net.TokensOf(ix.Place(topology.RawMaterial))
	readyToProcess, _ := net.TokensOf(ix.Place(topology.ReadyToProcess))
	if after != before-1 || readyToProcess != 1 {
		t.Fatalf("got raw=%d ready=%d, want raw=%d ready=1", after, readyToProcess, before-1)
	}
}

func TestAssemblyRequiresTwoProcessedTokens(t *testing.T) {
	net, ix, err := topology.Build()
	if err != nil {
		t.Fatalf("topology.Build: %v", err)
	}
	if err := net.Inject(ix.Place(topology.Processed), 1); err != nil {
		t.Fatalf("inject: %v", err)
	}

	step := Assembler(net, ix, fastTimings())
	step(context.Background())

	processed, _ := net.TokensOf(ix.Place(topology.Processed))
	if processed != 1 {
		t.Fatalf("processed = %d, want 1 (assembly must not start with only 1 of the 2 required tokens)", processed)
	}

	if err := net.Inject(ix.Place(topology.Processed), 1); err != nil {
		t.Fatalf("inject: %v", err)
	}
	step(context.Background())

	assembled, _ := net.TokensOf(ix.Place(topology.Assembled))
	if assembled != 1 {
		t.Fatalf("assembled = %d, want 1 after the second processed token arrives", assembled)
	}
}

// Command manufacturingd runs the manufacturing-line Petri net kernel: the
// canonical topology driven by a fleet of worker goroutines and an operator
// token-injection input, or a YAML-declared topology served read-only, in
// both cases with a snapshot endpoint and a Prometheus metrics endpoint,
// all under one cancellation scope.
//
// Restructured from GareArc-petri-net-workflow-engine-test's
// main.go/main_workflow.go "pick a demo, exec.Command(go run ...)" picker
// into a single long-running daemon entrypoint, following the same
// parse -> build -> announce -> run sequence.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/GareArc/manufacturing-petri-net/internal/config"
	"github.com/GareArc/manufacturing-petri-net/internal/console"
	"github.com/GareArc/manufacturing-petri-net/internal/metrics"
	"github.com/GareArc/manufacturing-petri-net/internal/operator"
	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
	"github.com/GareArc/manufacturing-petri-net/internal/rng"
	"github.com/GareArc/manufacturing-petri-net/internal/snapshot"
	"github.com/GareArc/manufacturing-petri-net/internal/topology"
	"github.com/GareArc/manufacturing-petri-net/internal/worker"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath   string
		snapshotAddr string
		metricsAddr  string
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "manufacturingd",
		Short: "Run the manufacturing-line Petri net kernel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, snapshotAddr, metricsAddr, seed)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML topology document (default: the built-in canonical line)")
	cmd.Flags().StringVar(&snapshotAddr, "snapshot-addr", "127.0.0.1:7000", "address for the marking snapshot endpoint")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "127.0.0.1:9090", "address for the Prometheus /metrics endpoint")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the worker decision RNG (0 picks a random seed)")

	return cmd
}

func run(ctx context.Context, configPath, snapshotAddr, metricsAddr string, seed int64) error {
	runID := uuid.New().String()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if seed == 0 {
		seed = rand.Int63()
	}
	source := rng.New(seed)

	console.Printf(console.Cyan, "[manufacturingd] run %s starting (seed=%d)\n", runID, seed)

	net, ix, hasWorkers, err := buildNet(configPath)
	if err != nil {
		return fmt.Errorf("build topology: %w", err)
	}
	net.Done()

	collector := metrics.New(net)
	net.SetObserver(collector)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return snapshot.Serve(gctx, snapshotAddr, net) })
	g.Go(func() error { return metrics.Serve(gctx, metricsAddr, collector) })

	if hasWorkers {
		startWorkers(g, gctx, net, ix, source)
		g.Go(func() error {
			return operator.Listen(gctx, os.Stdin, net, ix.Place(topology.RawMaterial))
		})
	}

	console.Printf(console.Cyan, "[manufacturingd] snapshot=%s metrics=%s\n", snapshotAddr, metricsAddr)

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	console.Printf(console.Cyan, "[manufacturingd] run %s shutting down\n", runID)
	return nil
}

// buildNet loads the net from configPath if given, otherwise constructs
// the built-in canonical manufacturing line. hasWorkers reports whether
// the topology.Indices accessors the worker fleet relies on are
// available: an operator-supplied YAML topology has no known worker
// semantics, so it is served read-only (snapshot and metrics only).
func buildNet(configPath string) (net *petrinet.Net, ix topology.Indices, hasWorkers bool, err error) {
	if configPath == "" {
		net, ix, err = topology.Build()
		return net, ix, true, err
	}

	doc, err := config.LoadFile(configPath)
	if err != nil {
		return nil, topology.Indices{}, false, err
	}
	net, _, _, err = doc.Build()
	if err != nil {
		return nil, topology.Indices{}, false, err
	}
	return net, topology.Indices{}, false, nil
}

func startWorkers(g *errgroup.Group, ctx context.Context, net *petrinet.Net, ix topology.Indices, source *rng.Source) {
	tm := worker.DefaultTimings()

	steps := []worker.Step{
		worker.MaterialLoader(net, ix, tm),
		worker.Processor(net, ix, tm),
		worker.Assembler(net, ix, tm),
		worker.PainterRouter(net, ix, source, tm),
		worker.QC(net, ix, source, tm),
		worker.Reworker(net, ix, tm),
		worker.Packager(net, ix, tm),
	}
	for _, step := range steps {
		step := step
		g.Go(func() error { return worker.Run(ctx, step) })
	}
}

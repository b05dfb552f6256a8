// Package metrics exposes kernel activity as Prometheus collectors: a fire
// counter per transition, a reject counter per transition, and a gauge per
// place tracking its current token count. No file in
// GareArc-petri-net-workflow-engine-test does this (it has no metrics
// layer at all); the pattern (collectors fed from outside the marking
// guard via petrinet.Observer, scraped on their own listener) is the
// standard Prometheus client idiom.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
)

// Collector implements petrinet.Observer and also serves as the registry's
// GaugeFunc source for place token counts.
type Collector struct {
	net *petrinet.Net

	fires   *prometheus.CounterVec
	rejects *prometheus.CounterVec

	registry *prometheus.Registry
}

// New builds a Collector wired to net's transitions and places, registered
// in its own registry (not the global DefaultRegisterer, so a process can
// run more than one net without collector name collisions).
func New(net *petrinet.Net) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		net:      net,
		registry: registry,
		fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "manufacturing",
			Name:      "transition_fires_total",
			Help:      "Number of times a transition has fired successfully.",
		}, []string{"transition"}),
		rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "manufacturing",
			Name:      "transition_rejects_total",
			Help:      "Number of fire attempts rejected because the transition was not enabled.",
		}, []string{"transition"}),
	}

	registry.MustRegister(c.fires, c.rejects)

	for p := 0; p < net.NumPlaces(); p++ {
		idx := p
		name, err := net.PlaceName(idx)
		if err != nil {
			continue
		}
		registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace:   "manufacturing",
				Name:        "place_tokens",
				Help:        "Current token count of a place.",
				ConstLabels: prometheus.Labels{"place": name},
			},
			func() float64 {
				tokens, err := net.TokensOf(idx)
				if err != nil {
					return 0
				}
				return float64(tokens)
			},
		))
	}

	return c
}

// OnFire implements petrinet.Observer.
func (c *Collector) OnFire(_ int, name string) {
	c.fires.WithLabelValues(name).Inc()
}

// OnReject implements petrinet.Observer.
func (c *Collector) OnReject(_ int, name string) {
	c.rejects.WithLabelValues(name).Inc()
}

// Serve runs an HTTP server exposing the collector's registry at /metrics
// until ctx is canceled.
func Serve(ctx context.Context, addr string, c *Collector) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		_ = srv.Close()
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics: serve on %s: %w", addr, err)
		}
		return nil
	}
}

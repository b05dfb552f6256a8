// Package operator reads a line-oriented control stream from an
// operator: a line starting with '+' injects one token into a configured place,
// anything else is ignored. Grounded on
// GareArc-petri-net-workflow-engine-test's own
// bufio.NewScanner(os.Stdin) menu-input idiom in main.go, repointed from
// "pick a demo number" to "inject a token".
package operator

import (
	"bufio"
	"context"
	"io"

	"github.com/GareArc/manufacturing-petri-net/internal/console"
	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
)

// Listen reads lines from r until ctx is canceled or r returns EOF. Each
// line starting with '+' injects one token into place; every other line is
// ignored without logging. Returns ctx.Err() on cancellation, nil on EOF.
func Listen(ctx context.Context, r io.Reader, net *petrinet.Net, place int) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			handleLine(line, net, place)
		}
	}
}

func handleLine(line string, net *petrinet.Net, place int) {
	if len(line) == 0 || line[0] != '+' {
		return
	}
	if err := net.Inject(place, 1); err != nil {
		console.Printf(console.Red, "[Operator] inject failed: %v\n", err)
		return
	}
	name, _ := net.PlaceName(place)
	console.Printf(console.Green, "[Operator] injected 1 token into %s\n", name)
}

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"time"

	"github.com/GareArc/manufacturing-petri-net/internal/petrinet"
)

// requestScratchSize mirrors status_server.c's "char request[128]", since
// the endpoint never parses the request, it only drains up to this many
// bytes so the client's write doesn't block on an unread socket.
const requestScratchSize = 128

// Serve listens on addr and answers every connection with the current
// marking as JSON, until ctx is canceled. It never parses the incoming
// request beyond draining a small fixed scratch buffer, matching
// original_source/status_server.c's request-agnostic accept loop.
func Serve(ctx context.Context, addr string, kernel *petrinet.Net) error {
	lc := stdnet.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("snapshot: listen on %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				// Transient accept error: keep serving, does not
				// affect the net.
				continue
			}
		}
		go handleConn(conn, kernel)
	}
}

func handleConn(conn stdnet.Conn, kernel *petrinet.Net) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	scratch := make([]byte, requestScratchSize)
	_, _ = conn.Read(scratch) // discarded: the endpoint is request-agnostic

	doc := Build(kernel)
	body, err := json.Marshal(doc)
	if err != nil {
		return
	}

	resp := fmt.Sprintf(
		"HTTP/1.1 200 OK\r\n"+
			"Content-Type: application/json\r\n"+
			"Connection: close\r\n"+
			"Access-Control-Allow-Origin: *\r\n"+
			"Content-Length: %d\r\n"+
			"\r\n"+
			"%s",
		len(body), body)

	_, _ = conn.Write([]byte(resp))
}

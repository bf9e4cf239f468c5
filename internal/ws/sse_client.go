package ws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// SSEClient streams Server-Sent Events over an HTTP response writer.
type SSEClient struct {
	mu      sync.Mutex
	writer  io.Writer
	flusher http.Flusher
	log     *slog.Logger
	closed  chan struct{}
	once    sync.Once
	seq     int
}

// NewSSEClient builds an SSE client instance.
func NewSSEClient(writer io.Writer, flusher http.Flusher, logger *slog.Logger) *SSEClient {
	return &SSEClient{writer: writer, flusher: flusher, log: logger, closed: make(chan struct{})}
}

// Send emits a numbered data event to the SSE stream.
func (c *SSEClient) Send(payload []byte) error {
	return c.write(func(w io.Writer) error {
		c.seq++
		_, err := fmt.Fprintf(w, "id: %d\nevent: engagement\ndata: %s\n\n", c.seq, payload)
		return err
	})
}

// Heartbeat emits a comment frame to keep the connection alive.
func (c *SSEClient) Heartbeat() error {
	return c.write(func(w io.Writer) error {
		_, err := fmt.Fprint(w, ": ping\n\n")
		return err
	})
}

func (c *SSEClient) write(fn func(io.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return io.EOF
	default:
	}
	if err := fn(c.writer); err != nil {
		c.log.Warn("sse write failed", "error", err)
		c.once.Do(func() { close(c.closed) })
		return err
	}
	c.flusher.Flush()
	return nil
}

// Serve blocks until ctx ends or the stream is closed, sending a heartbeat
// every interval.
func (c *SSEClient) Serve(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case <-ticker.C:
			if err := c.Heartbeat(); err != nil {
				return
			}
		}
	}
}

// Close marks the stream as closed and releases Serve.
func (c *SSEClient) Close() {
	c.once.Do(func() { close(c.closed) })
}

package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// Client is one open event-stream connection. A client belongs to exactly
// one Hub at a time; it is created when the stream opens and discarded when
// the peer disconnects. The mutex serializes writes so that overlapping
// broadcasts cannot interleave frames on the wire.
type Client struct {
	id    string
	mu    sync.Mutex
	w     io.Writer
	flush func()
}

// NewClient wraps a writer as a stream client. If the writer supports
// http.Flusher each frame is flushed immediately, which is what keeps the
// stream live through proxies and buffered transports.
func NewClient(w io.Writer) *Client {
	c := &Client{
		id: uuid.New().String(),
		w:  w,
	}
	if f, ok := w.(http.Flusher); ok {
		c.flush = f.Flush
	}
	return c
}

// ID returns the client's unique identity.
func (c *Client) ID() string { return c.id }

// Send writes one SSE frame carrying the JSON encoding of payload.
func (c *Client) Send(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.w, "data: %s\n\n", data); err != nil {
		return err
	}
	if c.flush != nil {
		c.flush()
	}
	return nil
}

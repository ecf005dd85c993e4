package stream_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenWriter simulates a peer whose transport has gone away.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("write: broken pipe") }

// frames splits a raw SSE byte stream into its data payloads.
func frames(buf *bytes.Buffer) []string {
	var out []string
	for _, block := range strings.Split(buf.String(), "\n\n") {
		if strings.HasPrefix(block, "data: ") {
			out = append(out, strings.TrimPrefix(block, "data: "))
		}
	}
	return out
}

func TestClientSendWritesOneFrame(t *testing.T) {
	var buf bytes.Buffer
	client := stream.NewClient(&buf)

	err := client.Send(map[string]string{"type": "PING"})
	require.NoError(t, err)

	payloads := frames(&buf)
	require.Len(t, payloads, 1)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(payloads[0]), &decoded))
	assert.Equal(t, "PING", decoded["type"])
}

func TestClientSendSurfacesWriteFailure(t *testing.T) {
	client := stream.NewClient(brokenWriter{})
	assert.Error(t, client.Send(map[string]string{"type": "PING"}))
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := stream.NewHub("test")

	var bufA, bufB bytes.Buffer
	clientA := stream.NewClient(&bufA)
	clientB := stream.NewClient(&bufB)
	hub.Join(clientA)
	hub.Join(clientB)

	sent := hub.Broadcast(map[string]string{"type": "UPDATE"})

	assert.Equal(t, 2, sent)
	assert.Len(t, frames(&bufA), 1)
	assert.Len(t, frames(&bufB), 1)
}

func TestHubBroadcastSkipsFailedWriteAndKeepsClient(t *testing.T) {
	hub := stream.NewHub("test")

	var bufA, bufC bytes.Buffer
	clientA := stream.NewClient(&bufA)
	clientB := stream.NewClient(brokenWriter{})
	clientC := stream.NewClient(&bufC)
	hub.Join(clientA)
	hub.Join(clientB)
	hub.Join(clientC)

	sent := hub.Broadcast(map[string]string{"type": "UPDATE"})

	assert.Equal(t, 2, sent)
	assert.Len(t, frames(&bufA), 1)
	assert.Len(t, frames(&bufC), 1)
	// A failed write never evicts; only disconnect detection does.
	assert.Equal(t, 3, hub.Count())
}

func TestHubLeaveIsIdempotent(t *testing.T) {
	hub := stream.NewHub("test")
	client := stream.NewClient(&bytes.Buffer{})

	hub.Join(client)
	hub.Leave(client)
	hub.Leave(client)

	assert.Equal(t, 0, hub.Count())
}

func TestHubBroadcastNeverReachesLeftClient(t *testing.T) {
	hub := stream.NewHub("test")

	var left bytes.Buffer
	leftClient := stream.NewClient(&left)
	hub.Join(leftClient)
	hub.Leave(leftClient)

	// Churn other clients in and out while broadcasting.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := stream.NewClient(&bytes.Buffer{})
			hub.Join(c)
			hub.Broadcast(map[string]string{"type": "UPDATE"})
			hub.Leave(c)
		}()
	}
	wg.Wait()

	assert.Empty(t, frames(&left))
}

func TestHubConcurrentJoinLeaveBroadcast(t *testing.T) {
	hub := stream.NewHub("test")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := stream.NewClient(&bytes.Buffer{})
			hub.Join(c)
			hub.Leave(c)
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(map[string]string{"type": "CHURN"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Count())
}

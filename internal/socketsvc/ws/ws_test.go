package ws

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/torcedor-hub/internal/comm"
)

type fakePublisher struct {
	mu   sync.Mutex
	msgs []comm.WSMessage
	tops []string
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	var m comm.WSMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, m)
	f.tops = append(f.tops, subject)
	return nil
}

func TestWatchIsForwardedWithSocketId(t *testing.T) {
	pub := &fakePublisher{}
	s := NewWs()
	s.Broker = pub
	s.Instance = "inst-a"

	err := s.SocketMessage("sock-1", &comm.WSMessage{Type: comm.TypeWatchMatches, SocketId: "spoofed", Instance: "inst-b"})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "socket.service", pub.tops[0])
	assert.Equal(t, comm.TypeWatchMatches, pub.msgs[0].Type)
	assert.Equal(t, "sock-1", pub.msgs[0].SocketId)
	assert.Equal(t, "inst-a", pub.msgs[0].Instance)
	assert.True(t, s.Watching("sock-1"))

	require.NoError(t, s.SocketMessage("sock-1", &comm.WSMessage{Type: comm.TypeUnwatchMatches}))
	assert.False(t, s.Watching("sock-1"))
	assert.Equal(t, comm.TypeUnwatchMatches, pub.msgs[1].Type)
}

func TestUnknownEvent(t *testing.T) {
	pub := &fakePublisher{}
	s := NewWs()
	s.Broker = pub

	assert.Error(t, s.SocketMessage("sock-1", &comm.WSMessage{Type: "init"}))
	assert.Empty(t, pub.msgs)
}

func TestDisconnectEndsWatch(t *testing.T) {
	pub := &fakePublisher{}
	s := NewWs()
	s.Broker = pub

	require.NoError(t, s.SocketMessage("sock-1", &comm.WSMessage{Type: comm.TypeWatchMatches}))
	s.HandleDisconnect("sock-1")

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, comm.TypeUnwatchMatches, pub.msgs[1].Type)
	assert.Equal(t, "sock-1", pub.msgs[1].SocketId)

	// a socket that never watched leaves nothing to clean up
	s.HandleDisconnect("sock-2")
	assert.Len(t, pub.msgs, 2)
}

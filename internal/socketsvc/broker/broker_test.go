package broker

import (
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/torcedor-hub/internal/comm"
)

type fakeSender struct {
	frames []interface{}
}

func (f *fakeSender) WriteJSON(v interface{}) error {
	f.frames = append(f.frames, v)
	return nil
}

type fakePublisher struct {
	topics   []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.topics = append(f.topics, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func newTestBroker(instance string, conns map[string]*fakeSender) (*Broker, *fakePublisher) {
	pub := &fakePublisher{}
	b := &Broker{
		Instance: instance,
		GetConnection: func(id string) (Sender, bool) {
			c, ok := conns[id]
			return c, ok
		},
		pub: pub,
	}
	return b, pub
}

func msg(t *testing.T, m comm.WSMessage) *nats.Msg {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return &nats.Msg{Data: data}
}

func TestTickIsRelayedToSocket(t *testing.T) {
	sock := &fakeSender{}
	b, pub := newTestBroker("inst-a", map[string]*fakeSender{"sock-1": sock})

	b.handleMessages(msg(t, comm.WSMessage{
		Type:     comm.TypeMatchTimeTick,
		Data:     json.RawMessage(`{"at":"2025-11-22T15:00:00Z","matches":[]}`),
		SocketId: "sock-1",
		Instance: "inst-a",
	}))

	require.Len(t, sock.frames, 1)
	frame := sock.frames[0].(*comm.WSMessage)
	assert.Equal(t, comm.TypeMatchTimeTick, frame.Type)
	assert.JSONEq(t, `{"at":"2025-11-22T15:00:00Z","matches":[]}`, string(frame.Data))
	assert.Empty(t, pub.payloads)
}

func TestTickForGoneSocketUnwatches(t *testing.T) {
	b, pub := newTestBroker("inst-a", map[string]*fakeSender{})

	b.handleMessages(msg(t, comm.WSMessage{Type: comm.TypeMatchTimeTick, SocketId: "gone", Instance: "inst-a"}))

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "socket.service", pub.topics[0])

	var m comm.WSMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &m))
	assert.Equal(t, comm.TypeUnwatchMatches, m.Type)
	assert.Equal(t, "gone", m.SocketId)
	assert.Equal(t, "inst-a", m.Instance)
}

func TestTickForSiblingInstanceIsIgnored(t *testing.T) {
	sock := &fakeSender{}
	owner, ownerPub := newTestBroker("inst-a", map[string]*fakeSender{"sock-1": sock})
	sibling, siblingPub := newTestBroker("inst-b", map[string]*fakeSender{})

	tick := comm.WSMessage{
		Type:     comm.TypeMatchTimeTick,
		Data:     json.RawMessage(`{"at":"2025-11-22T15:00:00Z","matches":[]}`),
		SocketId: "sock-1",
		Instance: "inst-a",
	}
	owner.handleMessages(msg(t, tick))
	sibling.handleMessages(msg(t, tick))

	assert.Len(t, sock.frames, 1)
	assert.Empty(t, ownerPub.payloads)
	assert.Empty(t, siblingPub.payloads, "a sibling must not end a watch it does not own")
}

func TestUnknownMessagesAreDropped(t *testing.T) {
	sock := &fakeSender{}
	b, pub := newTestBroker("inst-a", map[string]*fakeSender{"sock-1": sock})

	b.handleMessages(msg(t, comm.WSMessage{Type: "watch-matches", SocketId: "sock-1"}))
	b.handleMessages(&nats.Msg{Data: []byte("not json")})

	assert.Empty(t, sock.frames)
	assert.Empty(t, pub.payloads)
}

package broker

import (
	"encoding/json"

	"github.com/avvvet/torcedor-hub/internal/comm"
	natscli "github.com/avvvet/torcedor-hub/internal/nats"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Sender writes one frame to a web client.
type Sender interface {
	WriteJSON(v interface{}) error
}

type Broker struct {
	Conn          *nats.Conn
	Instance      string
	GetConnection func(string) (Sender, bool)
	pub           natscli.Publisher
}

func NewBroker(conn *nats.Conn, instance string, fncGetConnection func(string) (Sender, bool)) *Broker {
	return &Broker{
		Conn:          conn,
		Instance:      instance,
		GetConnection: fncGetConnection,
		pub:           conn,
	}
}

// consume message from hub service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message to hub service
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.pub.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receive message from hub service
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	if err := json.Unmarshal(msgNats.Data, message); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.TypeMatchTimeTick, comm.TypeError:
		b.sendMessage(message)
	default:
		log.Errorf("Unknown message %s", message.Type)
	}
}

// send socket message to the web client. Every instance receives every
// message; only the instance that owns the socket relays it, and only the
// owner ends the watch of a socket it no longer holds.
func (b *Broker) sendMessage(m *comm.WSMessage) {
	socketId := m.SocketId
	if m.Instance != b.Instance {
		return
	}

	conn, ok := b.GetConnection(socketId)
	if !ok {
		if m.Type == comm.TypeMatchTimeTick {
			b.unwatch(socketId)
		}
		return
	}

	if err := conn.WriteJSON(m); err != nil {
		log.Errorf("Error writing to socket %s: %s", socketId, err)
	}
}

func (b *Broker) unwatch(socketId string) {
	payload, err := json.Marshal(&comm.WSMessage{Type: comm.TypeUnwatchMatches, SocketId: socketId, Instance: b.Instance})
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}
	b.Publish(natscli.TopicSocketService, payload)
}

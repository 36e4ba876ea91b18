package broker

import (
	"encoding/json"
	"sync"

	"github.com/avvvet/torcedor-hub/internal/comm"
	"github.com/avvvet/torcedor-hub/internal/hubsvc/ticker"
	natscli "github.com/avvvet/torcedor-hub/internal/nats"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn   *nats.Conn
	Ticker *ticker.Ticker
	pub    natscli.Publisher

	owners sync.Map // socketId -> socket service instance holding it
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{
		Conn: nc,
		pub:  nc,
	}
}

// handles message coming from socket
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	if err := json.Unmarshal(msgNat.Data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	b.dispatch(msg)
}

func (b *Broker) dispatch(msg *comm.WSMessage) {
	if msg.SocketId == "" {
		log.Errorf("Error message %s without socket id", msg.Type)
		return
	}

	switch msg.Type {
	case comm.TypeWatchMatches:
		b.owners.Store(msg.SocketId, msg.Instance)
		b.Ticker.Watch(msg.SocketId)
	case comm.TypeUnwatchMatches:
		b.Ticker.Unwatch(msg.SocketId)
		b.owners.Delete(msg.SocketId)
	default:
		log.Errorf("Unknown message %s", msg.Type)
	}
}

// PublishTick sends one countdown tick to the socket service, naming the
// instance that asked for the watch.
func (b *Broker) PublishTick(socketId string, p comm.TickPayload) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Errorf("error [PublishTick] unable to marshal tick for %s: %s", socketId, err)
		return
	}

	msg := &comm.WSMessage{
		Type:     comm.TypeMatchTimeTick,
		Data:     data,
		SocketId: socketId,
		Instance: b.owner(socketId),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	b.Publish(natscli.TopicHubService, payload)
}

func (b *Broker) owner(socketId string) string {
	if v, ok := b.owners.Load(socketId); ok {
		return v.(string)
	}
	return ""
}

// consume message from socket service
func (b *Broker) SubscribSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.pub.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/avvvet/torcedor-hub/internal/comm"
	natscli "github.com/avvvet/torcedor-hub/internal/nats"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Client serializes writes to one websocket connection. The read loop and
// the NATS relay both write to it.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Ws struct {
	connMap  sync.Map // to keep track of socket connection with socketId
	watchMap sync.Map // sockets currently watching the match board
	Broker   natscli.Publisher
	Instance string // stamped on forwarded messages so ticks find their way back
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) error {
	switch message.Type {
	case comm.TypeWatchMatches:
		if err := s.forward(socketId, message); err != nil {
			return err
		}
		s.watchMap.Store(socketId, true)
	case comm.TypeUnwatchMatches:
		s.watchMap.Delete(socketId)
		return s.forward(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
		return fmt.Errorf("unknown event %q", message.Type)
	}
	return nil
}

// forward stamps the socket id and instance and hands the message to the hub service.
func (s *Ws) forward(socketId string, msg *comm.WSMessage) error {
	msg.SocketId = socketId
	msg.Instance = s.Instance

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return err
	}

	topic := natscli.TopicSocketService
	if err := s.Broker.Publish(topic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", topic, err)
		return err
	}

	log.Debugf("Published %s for socket %s to topic %s", msg.Type, socketId, topic)
	return nil
}

// HandleDisconnect forgets the connection and ends its watch, if any.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)

	if _, watching := s.watchMap.LoadAndDelete(socketId); watching {
		if err := s.forward(socketId, &comm.WSMessage{Type: comm.TypeUnwatchMatches}); err != nil {
			log.Errorf("unable to unwatch matches for closed socket %s: %v", socketId, err)
		}
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	s.connMap.Store(socketId, c)
	return c
}

func (s *Ws) GetConnection(socketId string) (*Client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*Client), true
}

func (s *Ws) Watching(socketId string) bool {
	_, ok := s.watchMap.Load(socketId)
	return ok
}

package nats

import (
	"os"

	"github.com/nats-io/nats.go"
)

// Topics shared by the hub and socket services.
const (
	TopicSocketService = "socket.service" // socket -> hub
	TopicHubService    = "hub.service"    // hub -> socket
)

// Publisher is the publishing half of a NATS connection.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Nats struct {
	Url   string
	Token string
	Conn  *nats.Conn
}

func Connect(name string) (*Nats, error) {
	n := &Nats{
		Url:   os.Getenv("NATS_URL"),
		Token: os.Getenv("NATS_TOKEN"),
	}

	if n.Url == "" {
		n.Url = "nats://localhost:4224"
	}

	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
	}

	// if token provided
	if n.Token != "" {
		opts = append(opts, nats.Token(n.Token))
	}

	conn, err := nats.Connect(n.Url, opts...)
	if err != nil {
		return nil, err
	}

	n.Conn = conn

	return n, nil
}

package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Publisher emits domain events to NATS. A nil Publisher (or one whose
// broker was never reachable) is safe to call; events are then dropped.
// Publishing is best-effort and never fails the request that caused it.
type Publisher struct {
	conn *nats.Conn
	log  *logrus.Logger
}

// Connect dials NATS and returns a Publisher bound to the connection.
// An empty URL disables publishing and returns a nil Publisher.
func Connect(url string, log *logrus.Logger) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	opts := []nats.Option{
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("nats reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &Publisher{conn: conn, log: log}, nil
}

// Publish marshals the event and fires it at the subject.
func (p *Publisher) Publish(subject string, event any) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).WithField("subject", subject).Warn("failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.WithError(err).WithField("subject", subject).Warn("failed to publish event")
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

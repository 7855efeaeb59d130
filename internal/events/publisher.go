package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const SubjectTaskAssigned = "task.assigned"

// Publisher announces domain events to other services.
type Publisher interface {
	PublishTaskAssigned(ctx context.Context, event TaskAssignedEvent) error
	Close()
}

type TaskAssignedEvent struct {
	EventID      string     `json:"event_id"`
	EventType    string     `json:"event_type"`
	TaskID       uint64     `json:"task_id"`
	Title        string     `json:"title"`
	AssigneeID   uint64     `json:"assignee_id"`
	AssignedByID uint64     `json:"assigned_by_id"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type NatsPublisher struct {
	conn conn
	log  *zap.Logger
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string, log *zap.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("taskhub-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return newNatsPublisher(nc, log), nil
}

func newNatsPublisher(c conn, log *zap.Logger) *NatsPublisher {
	return &NatsPublisher{conn: c, log: log}
}

func (p *NatsPublisher) PublishTaskAssigned(ctx context.Context, event TaskAssignedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event.EventType = SubjectTaskAssigned
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", SubjectTaskAssigned, err)
	}

	if err := p.conn.Publish(SubjectTaskAssigned, payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", SubjectTaskAssigned, err)
	}

	p.log.Debug("Published event",
		zap.String("subject", SubjectTaskAssigned),
		zap.String("event_id", event.EventID),
		zap.Uint64("task_id", event.TaskID),
	)
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("Failed to drain NATS connection", zap.Error(err))
	}
}

// NoopPublisher drops every event. Used when NATS_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTaskAssigned(context.Context, TaskAssignedEvent) error { return nil }

func (NoopPublisher) Close() {}

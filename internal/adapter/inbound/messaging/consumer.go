// Package messaging consumes analysis job messages from NATS JetStream and
// hands them to the job processor.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	outboundmessaging "testsmith/internal/adapter/outbound/messaging"
	"testsmith/internal/application/common/logging"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/messaging"
	"testsmith/internal/port/inbound"

	"github.com/nats-io/nats.go"
)

// ConsumerConfig holds the JetStream consumer settings.
type ConsumerConfig struct {
	QueueGroup  string
	DurableName string
	AckWait     time.Duration
	MaxDeliver  int
	JobTimeout  time.Duration
}

// Validate fills defaults and rejects unusable settings.
func (c *ConsumerConfig) Validate() error {
	if c.QueueGroup == "" {
		return errors.New("queue group cannot be empty")
	}
	if c.DurableName == "" {
		c.DurableName = c.QueueGroup
	}
	if c.AckWait <= 0 {
		c.AckWait = 30 * time.Second
	}
	if c.MaxDeliver <= 0 {
		c.MaxDeliver = messaging.DefaultMaxRetries + 1
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = time.Minute
	}
	return nil
}

// NATSConsumer subscribes to the analysis job subject and drives the
// processor for each delivery.
type NATSConsumer struct {
	conn      *nats.Conn
	js        nats.JetStreamContext
	config    ConsumerConfig
	processor inbound.JobProcessor

	mu           sync.Mutex
	subscription *nats.Subscription
	running      bool
}

// NewNATSConsumer creates a consumer over an existing NATS connection.
func NewNATSConsumer(conn *nats.Conn, config ConsumerConfig, processor inbound.JobProcessor) (*NATSConsumer, error) {
	if conn == nil {
		return nil, errors.New("NATS connection cannot be nil")
	}
	if processor == nil {
		return nil, errors.New("job processor cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSConsumer{
		conn:      conn,
		js:        js,
		config:    config,
		processor: processor,
	}, nil
}

// Start subscribes to the analysis job subject with a durable queue group.
func (n *NATSConsumer) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return errors.New("consumer already started")
	}

	subscription, err := n.js.QueueSubscribe(
		outboundmessaging.SubjectAnalysisJob,
		n.config.QueueGroup,
		n.handleMessage,
		nats.Durable(n.config.DurableName),
		nats.ManualAck(),
		nats.AckWait(n.config.AckWait),
		nats.MaxDeliver(n.config.MaxDeliver),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", outboundmessaging.SubjectAnalysisJob, err)
	}

	n.subscription = subscription
	n.running = true

	slogger.Info(ctx, "analysis job consumer started", slogger.Fields{
		"subject":     outboundmessaging.SubjectAnalysisJob,
		"queue_group": n.config.QueueGroup,
		"durable":     n.config.DurableName,
	})
	return nil
}

// Stop drains the subscription so in-flight messages finish processing.
func (n *NATSConsumer) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.running {
		return nil
	}
	n.running = false

	if n.subscription != nil {
		if err := n.subscription.Drain(); err != nil {
			return fmt.Errorf("failed to drain subscription: %w", err)
		}
		n.subscription = nil
	}

	slogger.Info(ctx, "analysis job consumer stopped", nil)
	return nil
}

// Running reports whether the consumer holds an active subscription.
func (n *NATSConsumer) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running
}

func (n *NATSConsumer) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), n.config.JobTimeout)
	defer cancel()

	var message messaging.AnalysisJobMessage
	if err := json.Unmarshal(msg.Data, &message); err != nil {
		slogger.ErrorNoCtx("dropping undecodable analysis job message", slogger.Fields{
			"error": err.Error(),
		})
		// Redelivery cannot fix a malformed payload.
		_ = msg.Term()
		return
	}

	ctx = logging.WithCorrelationID(ctx, message.MessageID)

	if err := message.Validate(); err != nil {
		slogger.Error(ctx, "dropping invalid analysis job message", slogger.Fields{
			"error": err.Error(),
		})
		_ = msg.Term()
		return
	}

	if err := n.processor.ProcessJob(ctx, message); err != nil {
		slogger.Error(ctx, "analysis job processing failed", slogger.Fields{
			"analysis_id": message.AnalysisID.String(),
			"error":       err.Error(),
		})
		_ = msg.Nak()
		return
	}

	if err := msg.Ack(); err != nil {
		slogger.Error(ctx, "failed to ack analysis job message", slogger.Fields{
			"analysis_id": message.AnalysisID.String(),
			"error":       err.Error(),
		})
	}
}

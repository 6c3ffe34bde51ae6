// Package messaging provides the NATS JetStream implementation of the
// MessagePublisher port.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/config"
	"testsmith/internal/domain/messaging"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	// StreamName is the JetStream stream holding analysis jobs.
	StreamName = "ANALYSES"

	// SubjectAnalysisJob is the subject analysis jobs are published to.
	SubjectAnalysisJob = "analysis.job"

	natsConnectionTimeout = 5 * time.Second
	streamMaxAge          = 24 * time.Hour
)

// NATSMessagePublisher provides a NATS JetStream implementation of
// MessagePublisher.
type NATSMessagePublisher struct {
	config config.NATSConfig
	conn   *nats.Conn
	js     nats.JetStreamContext

	mu             sync.Mutex
	publishedCount int64
	failedCount    int64
}

// NewNATSMessagePublisher creates a publisher and connects it to NATS.
func NewNATSMessagePublisher(cfg config.NATSConfig) (*NATSMessagePublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("NATS URL cannot be empty")
	}
	if !strings.HasPrefix(cfg.URL, "nats://") {
		return nil, errors.New("invalid NATS URL scheme")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Timeout(natsConnectionTimeout),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher := &NATSMessagePublisher{
		config: cfg,
		conn:   conn,
		js:     js,
	}
	if err := publisher.ensureStream(); err != nil {
		conn.Close()
		return nil, err
	}

	return publisher, nil
}

// ensureStream creates the analysis stream if it does not exist yet.
func (n *NATSMessagePublisher) ensureStream() error {
	_, err := n.js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}

	_, err = n.js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAnalysisJob},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    streamMaxAge,
		Storage:   nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// PublishAnalysisJob publishes an analysis job message to JetStream.
func (n *NATSMessagePublisher) PublishAnalysisJob(
	ctx context.Context,
	analysisID uuid.UUID,
	language string,
) error {
	message := messaging.NewAnalysisJobMessage(analysisID, language)
	if err := message.Validate(); err != nil {
		return fmt.Errorf("invalid analysis job message: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode analysis job message: %w", err)
	}

	_, err = n.js.Publish(SubjectAnalysisJob, payload, nats.Context(ctx))
	n.recordPublish(err == nil)
	if err != nil {
		return fmt.Errorf("failed to publish analysis job: %w", err)
	}

	slogger.Debug(ctx, "analysis job published", slogger.Fields{
		"analysis_id": analysisID.String(),
		"message_id":  message.MessageID,
		"subject":     SubjectAnalysisJob,
	})
	return nil
}

// Connected reports whether the underlying connection is healthy.
func (n *NATSMessagePublisher) Connected() bool {
	return n.conn != nil && n.conn.IsConnected()
}

// Conn exposes the underlying connection so consumers can share it. The
// publisher has already provisioned the analysis stream by the time a caller
// gets here.
func (n *NATSMessagePublisher) Conn() *nats.Conn {
	return n.conn
}

// Close drains the connection.
func (n *NATSMessagePublisher) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

func (n *NATSMessagePublisher) recordPublish(ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ok {
		n.publishedCount++
	} else {
		n.failedCount++
	}
}

// Metrics returns the publish counters.
func (n *NATSMessagePublisher) Metrics() (published, failed int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.publishedCount, n.failedCount
}

// Package events publishes assessment lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/segmentio/kafka-go"
)

// TypeAssessmentSaved is published after an assessment is persisted.
const TypeAssessmentSaved = "assessment.saved"

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "planportal.assessments"

// Event is the JSON message body.
type Event struct {
	Type           string         `json:"type"`
	AssessmentID   string         `json:"assessment_id"`
	ProjectName    string         `json:"project_name"`
	RiskLevel      core.RiskLevel `json:"risk_level"`
	TotalRiskScore float64        `json:"total_risk_score"`
	At             time.Time      `json:"at"`
}

// AssessmentSaved builds the event for a persisted assessment.
func AssessmentSaved(a *core.SavedAssessment) Event {
	return Event{
		Type:           TypeAssessmentSaved,
		AssessmentID:   a.ID,
		ProjectName:    a.ProjectName,
		RiskLevel:      a.Risk.RiskLevel,
		TotalRiskScore: a.Risk.TotalRiskScore,
		At:             a.CreatedAt,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Noop) Close() error { return nil }

// Config selects and configures the publisher.
type Config struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events synchronously to one topic, keyed by
// assessment ID.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var errNoBrokers = errors.New("at least one broker is required")

// New returns a KafkaPublisher when enabled, otherwise Noop.
func New(cfg Config, logger *slog.Logger) (Publisher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !cfg.Enabled {
		logger.Debug("event publishing disabled")
		return Noop{}, nil
	}
	if len(cfg.Brokers) == 0 {
		return nil, errNoBrokers
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = DefaultTopic
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, topic, logger), nil
}

func newKafkaPublisher(w messageWriter, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		topic:  topic,
		logger: logger.With("component", "events", "topic", topic),
	}
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := kafka.Message{Key: []byte(e.AssessmentID), Value: value, Time: e.At}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("event publish failed", "type", e.Type, "assessment_id", e.AssessmentID, "error", err)
		return fmt.Errorf("failed to publish %s: %w", e.Type, err)
	}
	p.logger.Debug("event published", "type", e.Type, "assessment_id", e.AssessmentID)
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

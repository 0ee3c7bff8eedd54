package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/leapstack-labs/planportal/internal/testutil"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		noop    bool
	}{
		{name: "disabled", cfg: Config{}, noop: true},
		{name: "enabled without brokers", cfg: Config{Enabled: true}, wantErr: true},
		{name: "enabled", cfg: Config{Enabled: true, Brokers: []string{"localhost:9092"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg, testutil.NewTestLogger(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isNoop := p.(Noop)
			assert.Equal(t, tt.noop, isNoop)
			if kp, ok := p.(*KafkaPublisher); ok {
				assert.Equal(t, DefaultTopic, kp.topic)
			}
		})
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := newKafkaPublisher(w, "test", testutil.NewTestLogger(t))

	saved := &core.SavedAssessment{
		ID:          "abc-123",
		ProjectName: "Bjørvika Nord",
		Risk:        core.RiskAssessment{RiskLevel: core.RiskLevelMedium, TotalRiskScore: 0.52},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), AssessmentSaved(saved)))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "abc-123", string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, TypeAssessmentSaved, got["type"])
	assert.Equal(t, "abc-123", got["assessment_id"])
	assert.Equal(t, "Bjørvika Nord", got["project_name"])
	assert.Equal(t, "Medium", got["risk_level"])
	assert.InDelta(t, 0.52, got["total_risk_score"], 1e-9)
	assert.Equal(t, "2026-01-02T03:04:05Z", got["at"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	w := &recordingWriter{err: assert.AnError}
	p := newKafkaPublisher(w, "test", testutil.NewTestLogger(t))

	err := p.Publish(context.Background(), Event{Type: TypeAssessmentSaved, AssessmentID: "x"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

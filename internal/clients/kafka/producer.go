package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/records"
)

type producerConfig interface {
	Brokers() []string
	ChangesTopic() string
}

// ChangeEvent is the JSON message published for every persisted mutation.
type ChangeEvent struct {
	EventID    string    `json:"eventId"`
	Workspace  string    `json:"workspace,omitempty"`
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	RecordID   int64     `json:"recordId"`
	At         time.Time `json:"at"`
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create producer")
	}
	return newProducer(producer, cfg.ChangesTopic()), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
	}
}

// Publish sends the change keyed by workspace, so one workspace's events
// keep their order within a partition.
func (p *Producer) Publish(_ context.Context, workspace string, change records.Change) error {
	message, err := json.Marshal(ChangeEvent{
		EventID:    uuid.NewString(),
		Workspace:  workspace,
		Collection: change.Collection,
		Op:         string(change.Op),
		RecordID:   change.RecordID,
		At:         change.At.UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode change event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(message),
	}
	if workspace != "" {
		msg.Key = sarama.StringEncoder(workspace)
	}
	_, _, err = p.producer.SendMessage(msg)
	return errors.Wrap(err, "send change event")
}

// For returns a records.Notifier publishing on behalf of one workspace.
func (p *Producer) For(workspace string) records.Notifier {
	return &workspaceNotifier{producer: p, workspace: workspace}
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}

type workspaceNotifier struct {
	producer  *Producer
	workspace string
}

func (n *workspaceNotifier) Notify(ctx context.Context, change records.Change) error {
	return n.producer.Publish(ctx, n.workspace, change)
}

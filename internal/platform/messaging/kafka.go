// Package messaging publishes ledger events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	"github.com/shopspring/decimal"
)

// JournalPostedEvent is the message body written for every committed entry.
type JournalPostedEvent struct {
	EntryID     string          `json:"entryID"`
	EntryDate   string          `json:"date"`
	Source      string          `json:"source"`
	Ref         string          `json:"ref"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	LineCount   int             `json:"lineCount"`
	CreatedBy   string          `json:"createdBy"`
	PostedAt    time.Time       `json:"postedAt"`
}

// NewJournalPostedEvent summarises an entry for downstream consumers.
func NewJournalPostedEvent(entry domain.JournalEntry) JournalPostedEvent {
	debit, credit := entry.Totals()
	return JournalPostedEvent{
		EntryID:     entry.EntryID,
		EntryDate:   entry.EntryDate.Format(time.DateOnly),
		Source:      entry.Source,
		Ref:         entry.Ref,
		TotalDebit:  debit,
		TotalCredit: credit,
		LineCount:   len(entry.Lines),
		CreatedBy:   entry.CreatedBy,
		PostedAt:    entry.CreatedAt,
	}
}

// KafkaPublisher sends JournalPostedEvent messages keyed by entry id.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

var _ ports.LedgerEventPublisher = (*KafkaPublisher)(nil)

// NewProducerConfig returns the producer settings used in production.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

// NewKafkaPublisher dials the brokers and returns a publisher for topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	logger.Info("Kafka producer created", slog.Any("brokers", brokers), slog.String("topic", topic))
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) PublishJournalPosted(ctx context.Context, entry domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(NewJournalPostedEvent(entry))
	if err != nil {
		return fmt.Errorf("failed to encode journal posted event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(entry.EntryID),
		Value: sarama.ByteEncoder(body),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish journal posted event: %w", err)
	}
	p.logger.Debug("Journal posted event published",
		slog.String("entry_id", entry.EntryID),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

var _ ports.LedgerEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishJournalPosted(context.Context, domain.JournalEntry) error { return nil }

func (NoopPublisher) Close() error { return nil }

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"lipu/types"

	"github.com/IBM/sarama"
)

// Producer publishes refresh events. It satisfies library.Notifier.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	cfg := newSaramaConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewProducerFromSync(p, topic), nil
}

// NewProducerFromSync wraps an existing sarama producer.
func NewProducerFromSync(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

func (p *Producer) RefreshCompleted(ctx context.Context, event types.RefreshEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode refresh event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.RunID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish refresh event: %w", err)
	}

	log.Printf("📤 Published refresh event %s (partition=%d, offset=%d)", event.RunID, partition, offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/lovelocal/directory-service/internal/domain"
)

var _ domain.PublisherPort = (*DirectoryPublisher)(nil)

type DirectoryPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewDirectoryPublisher builds a publisher whose writer carries no
// fixed topic; each message is routed by its own Topic so Publish can
// honor per-call topics. topic is the default for lifecycle events.
func NewDirectoryPublisher(brokers []string, topic string) *DirectoryPublisher {
	return &DirectoryPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func (p *DirectoryPublisher) Publish(topic string, msgs ...domain.Message) error {
	return p.writer.WriteMessages(context.Background(), toKafkaMessages(topic, msgs)...)
}

func toKafkaMessages(topic string, msgs []domain.Message) []kafka.Message {
	km := make([]kafka.Message, len(msgs))
	for i, m := range msgs {
		km[i] = kafka.Message{
			Topic: topic,
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
		}
	}
	return km
}

func (p *DirectoryPublisher) PublishBusinessEvent(event BusinessEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Publish(p.topic, domain.Message{Key: []byte(event.BusinessID), Value: v})
}

func (p *DirectoryPublisher) PublishGeofenceEvent(event GeofenceEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Publish(p.topic, domain.Message{Key: []byte(event.UserID), Value: v})
}

package repository

import (
	"context"

	"DomainFlip/internal/domain/models"
	domrepo "DomainFlip/internal/domain/repository"
	pkgkafka "DomainFlip/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Messages are keyed by
// domain so re-evaluations of the same name land on the same partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e *models.DomainEvaluation) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.Domain), e)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, evals []models.DomainEvaluation) error {
	if len(evals) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(evals))
	for i := range evals {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(evals[i].Domain),
			Value: evals[i],
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

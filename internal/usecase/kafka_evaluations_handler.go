package usecase

import (
	"context"
	"encoding/json"
	"time"

	"DomainFlip/internal/domain/models"
	domrepo "DomainFlip/internal/domain/repository"
	pkgkafka "DomainFlip/pkg/kafka"
)

// KafkaEvaluationsHandler consumes evaluation messages and writes them to
// storage. Used when the backend is Kafka but evaluations should still land
// in ClickHouse for history queries.
type KafkaEvaluationsHandler struct {
	topic   string
	storage domrepo.EvaluationStore
	metrics domrepo.Metrics
}

func NewKafkaEvaluationsHandler(topic string, storage domrepo.EvaluationStore, metrics domrepo.Metrics) *KafkaEvaluationsHandler {
	return &KafkaEvaluationsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaEvaluationsHandler) Topic() string { return h.topic }

func (h *KafkaEvaluationsHandler) Handle(ctx context.Context, b []byte) error {
	var e models.DomainEvaluation
	if err := json.Unmarshal(b, &e); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if e.EvaluatedAt.IsZero() {
		e.EvaluatedAt = time.Now()
	}

	start := time.Now()
	err := h.storage.Store(ctx, &e)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordEvaluationSent("clickhouse", tld(e.Domain))
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaEvaluationsHandler)(nil)

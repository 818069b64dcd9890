package di

import (
	"context"
	"fmt"
	"time"

	"DomainFlip/internal/domain/repository"
	domsvc "DomainFlip/internal/domain/service"
	"DomainFlip/internal/handler/api"
	mid "DomainFlip/internal/middleware"
	internalrepo "DomainFlip/internal/repository"
	"DomainFlip/internal/service/cache"
	"DomainFlip/internal/service/github"
	"DomainFlip/internal/service/ratelimit"
	"DomainFlip/internal/services/flipping"
	"DomainFlip/internal/usecase"
	pkgch "DomainFlip/pkg/clickhouse"
	"DomainFlip/pkg/config"
	pkgkafka "DomainFlip/pkg/kafka"
	applogger "DomainFlip/pkg/logger"
	"DomainFlip/pkg/metrics"
	"DomainFlip/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// evaluations schema. Returns nil when ClickHouse is not configured and the
// backend does not require it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		if cfg.Backend.Type == "clickhouse" {
			return nil, fmt.Errorf("backend is clickhouse but clickhouse.host is empty")
		}
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database, "evaluations")); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is not
// configured and the backend does not require it.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		if cfg.Backend.Type == "kafka" {
			return nil, fmt.Errorf("backend is kafka but kafka.brokers is empty")
		}
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEvaluationStore creates ClickHouse-backed evaluation storage, or
// nil when ClickHouse is not wired.
func ProvideEvaluationStore(chClient *pkgch.Client, cfg *config.Config) repository.EvaluationStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseEvaluationStore(chClient.DB(), cfg.ClickHouse.Database+".evaluations")
}

// ProvideEvaluationPublisher creates a Kafka publisher, or nil when Kafka
// is not wired.
func ProvideEvaluationPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideTrendSource creates the GitHub search client with its token bucket.
func ProvideTrendSource(cfg *config.Config) repository.TrendSource {
	return github.New(
		cfg.GitHub.Token,
		cfg.GitHub.BaseURL,
		github.WithPerQuery(cfg.GitHub.PerQuery),
		github.WithTimeout(cfg.GitHub.Timeout),
		github.WithRateLimit(ratelimit.New(), cfg.GitHub.RateCapacity, cfg.GitHub.RateRefill),
	)
}

// ProvideValuator creates the memoizing domain valuator.
func ProvideValuator(cfg *config.Config) (domsvc.Valuator, error) {
	v, err := flipping.NewValuator(cfg.Scan.ValuatorMemo)
	if err != nil {
		return nil, fmt.Errorf("valuator: %w", err)
	}
	return v, nil
}

// ProvideEvaluationProcessor creates the backend router use case.
func ProvideEvaluationProcessor(
	pub repository.Publisher,
	store repository.EvaluationStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.EvaluationProcessor {
	return usecase.NewEvaluationProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideStreamHub creates the WebSocket fan-out hub.
func ProvideStreamHub(l *applogger.Logger) *api.StreamHub {
	return api.NewStreamHub(l)
}

// ProvideScanPipeline creates the validating pipeline in front of the
// backend. The app starts and stops its retry flusher.
func ProvideScanPipeline(processor *usecase.EvaluationProcessor, m repository.Metrics) *mid.ScanPipeline {
	return mid.NewScanPipeline(processor, m,
		mid.WithMaxRPS(100),
		mid.WithBufferSize(2000),
	)
}

// ProvideTrendScanner creates the scan orchestrator.
func ProvideTrendScanner(
	source repository.TrendSource,
	valuator domsvc.Valuator,
	processor *usecase.EvaluationProcessor,
	pipe *mid.ScanPipeline,
	m repository.Metrics,
	l *applogger.Logger,
	hub *api.StreamHub,
	cfg *config.Config,
) *usecase.TrendScanner {
	opts := []usecase.ScannerOption{
		usecase.WithPipeline(pipe),
		usecase.WithNotifier(hub),
		usecase.WithMaxCandidates(cfg.Scan.MaxCandidates),
		usecase.WithCacheTTL(cfg.Cache.TTL),
	}
	if cfg.Cache.Redis.Enabled {
		opts = append(opts, usecase.WithPersistentCache(cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})))
	}
	return usecase.NewTrendScanner(
		source,
		valuator,
		processor,
		m,
		l,
		cfg.GitHub.Queries,
		opts...,
	)
}

// ProvideKafkaConsumer creates a Kafka consumer for the evaluations topic,
// or nil when the backend is not Kafka or history storage is unavailable.
func ProvideKafkaConsumer(cfg *config.Config, store repository.EvaluationStore) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" || store == nil {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideEvaluationsHandler registers the handler that lands Kafka
// evaluations into ClickHouse.
func ProvideEvaluationsHandler(store repository.EvaluationStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaEvaluationsHandler {
	if store == nil {
		return nil
	}
	return usecase.NewKafkaEvaluationsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	scanner *usecase.TrendScanner,
	valuator domsvc.Valuator,
	store repository.EvaluationStore,
	hub *api.StreamHub,
) *api.StrategyEchoHandler {
	return api.NewStrategyEchoHandler(l, scanner, valuator, store, hub)
}

// kafkaLogPublisher adapts the Kafka producer to the logger collector.
type kafkaLogPublisher struct {
	p *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return k.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	scanner *usecase.TrendScanner,
	processor *usecase.EvaluationProcessor,
	pipe *mid.ScanPipeline,
	producer *pkgkafka.Producer,
	consumer *pkgkafka.Consumer,
	eh *usecase.KafkaEvaluationsHandler,
	chClient *pkgch.Client,
	handler *api.StrategyEchoHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	// Aggregated error logs flow to a Kafka topic when a producer exists.
	if producer != nil {
		l.AddCollector(&applogger.CollectorConfig{
			FlushInterval:  30 * time.Second,
			CountThreshold: 50,
			Topic:          cfg.Kafka.Topic + ".errors",
			Publisher:      kafkaLogPublisher{p: producer},
		})
	}
	app := server.New(cfg, l, scanner, processor, pipe, consumer, chClient)
	app.SetHTTPHandler(handler)
	if eh != nil {
		app.SetConsumerHandler(eh)
	}
	return app
}

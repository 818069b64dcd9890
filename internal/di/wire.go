//go:build wireinject
// +build wireinject

package di

import (
	"DomainFlip/pkg/config"
	"DomainFlip/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideEvaluationStore,
		ProvideEvaluationPublisher,
		ProvideTrendSource,

		// Use cases
		ProvideValuator,
		ProvideEvaluationProcessor,
		ProvideScanPipeline,
		ProvideStreamHub,
		ProvideTrendScanner,
		ProvideKafkaConsumer,
		ProvideEvaluationsHandler,

		// HTTP + application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}

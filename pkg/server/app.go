package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	mid "DomainFlip/internal/middleware"
	"DomainFlip/internal/report"
	"DomainFlip/internal/usecase"
	pkgch "DomainFlip/pkg/clickhouse"
	"DomainFlip/pkg/config"
	xhttp "DomainFlip/pkg/http"
	pkgkafka "DomainFlip/pkg/kafka"
	applogger "DomainFlip/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg             *config.Config
	l               *applogger.Logger
	scanner         *usecase.TrendScanner
	processor       *usecase.EvaluationProcessor
	pipe            *mid.ScanPipeline
	consumer        *pkgkafka.Consumer
	consumerHandler pkgkafka.MessageHandler
	chClient        *pkgch.Client
	httpServer      *xhttp.Server
	httpHandler     xhttp.Handler
	cron            *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	scanner *usecase.TrendScanner,
	processor *usecase.EvaluationProcessor,
	pipe *mid.ScanPipeline,
	consumer *pkgkafka.Consumer,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		scanner:   scanner,
		processor: processor,
		pipe:      pipe,
		consumer:  consumer,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetConsumerHandler allows DI to inject the Kafka message handler.
func (a *App) SetConsumerHandler(h pkgkafka.MessageHandler) { a.consumerHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestLogger(a.l, time.Second),
	)

	// Retry flusher for evaluations buffered on backend failure
	if a.pipe != nil {
		a.pipe.Start(ctx)
	}

	// Periodic scans
	if a.cfg.Scan.Schedule != "" {
		a.cron = cron.New()
		if _, err := a.cron.AddFunc(a.cfg.Scan.Schedule, func() { a.runScan(ctx) }); err != nil {
			a.l.Error("invalid scan schedule",
				applogger.String("schedule", a.cfg.Scan.Schedule),
				applogger.Error(err),
			)
			return err
		}
		a.cron.Start()
		a.l.Info("scan scheduler started", applogger.String("schedule", a.cfg.Scan.Schedule))
	}

	if a.cfg.Scan.RunOnStart {
		go a.runScan(ctx)
	}

	// Consumer lands Kafka evaluations into ClickHouse when both are wired
	if a.consumer != nil && a.consumerHandler != nil {
		a.consumer.RegisterHandler(a.consumerHandler)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.l.Info("kafka consumer started", applogger.String("topic", a.consumerHandler.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) runScan(ctx context.Context) {
	r, err := a.scanner.Scan(ctx)
	if err != nil {
		a.l.Error("scheduled scan failed", applogger.Error(err))
		return
	}

	if a.cfg.Scan.ReportPath == "" {
		return
	}
	f, err := os.Create(a.cfg.Scan.ReportPath)
	if err != nil {
		a.l.Warn("report file create failed",
			applogger.String("path", a.cfg.Scan.ReportPath),
			applogger.Error(err),
		)
		return
	}
	defer f.Close()
	if err := report.NewMarkdownWriter(f).Write(r); err != nil {
		a.l.Warn("report write failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.l.Info("shutting down...")

	if a.cron != nil {
		cronCtx := a.cron.Stop()
		select {
		case <-cronCtx.Done():
		case <-time.After(5 * time.Second):
			a.l.Warn("cron jobs did not finish in time")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.pipe != nil {
		a.pipe.Stop()
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Close processor resources (publisher/storage)
	if a.processor != nil {
		a.processor.Close()
	}

	a.l.Info("shutdown complete")
	return nil
}

package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"DomainFlip/internal/domain/models"
	domrepo "DomainFlip/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, e *models.DomainEvaluation) error
	ProcessBatch(ctx context.Context, evals []models.DomainEvaluation) error
}

// ScanPipeline is a middleware between the scanner and the backend.
// It validates, throttles per TLD, and buffers when downstream is unavailable.
type ScanPipeline struct {
	proc    Proc
	metrics domrepo.Metrics
	maxRPS  int
	bufSize int
	bufCh   chan *models.DomainEvaluation
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
	// per-TLD last accepted time
	lastSeen map[string]time.Time
	// optional transform hook
	transform func(*models.DomainEvaluation) *models.DomainEvaluation
}

type PipelineOption func(*ScanPipeline)

// WithMaxRPS sets the max evaluations per second per TLD.
func WithMaxRPS(n int) PipelineOption {
	return func(p *ScanPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *ScanPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithTransform sets a transformation hook applied before forwarding.
func WithTransform(fn func(*models.DomainEvaluation) *models.DomainEvaluation) PipelineOption {
	return func(p *ScanPipeline) { p.transform = fn }
}

// NewScanPipeline creates a new pipeline.
func NewScanPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *ScanPipeline {
	p := &ScanPipeline{
		proc:     proc,
		metrics:  metrics,
		maxRPS:   100,
		bufSize:  1000,
		bufCh:    make(chan *models.DomainEvaluation, 1000),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.DomainEvaluation, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered evaluations.
func (p *ScanPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case e := <-p.bufCh:
				if e == nil {
					continue
				}
				if err := p.proc.Process(ctx, e); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- e:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *ScanPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards an evaluation to downstream,
// buffering on errors.
func (p *ScanPipeline) Process(ctx context.Context, e *models.DomainEvaluation) error {
	start := time.Now()
	if err := validateEvaluation(e); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		e = p.transform(e)
		if err := validateEvaluation(e); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(evalTLD(e.Domain), start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.proc.Process(ctx, e); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- e:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch validates and forwards a whole scan's evaluations in one
// downstream call. The per-TLD throttle does not apply here: it guards the
// streaming path, and a scan pass must land every evaluation it produced.
func (p *ScanPipeline) ProcessBatch(ctx context.Context, evals []models.DomainEvaluation) error {
	start := time.Now()
	valid := make([]models.DomainEvaluation, 0, len(evals))
	for i := range evals {
		e := &evals[i]
		if err := validateEvaluation(e); err != nil {
			p.metrics.RecordError("pipeline_validate")
			continue
		}
		if p.transform != nil {
			e = p.transform(e)
			if err := validateEvaluation(e); err != nil {
				p.metrics.RecordError("pipeline_transform_invalid")
				continue
			}
		}
		valid = append(valid, *e)
	}
	if len(valid) == 0 {
		return nil
	}

	if err := p.proc.ProcessBatch(ctx, valid); err != nil {
		p.metrics.RecordError("pipeline_process")
		for i := range valid {
			select {
			case p.bufCh <- &valid[i]:
			default:
				p.metrics.RecordError("pipeline_buffer_full")
			}
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_batch", time.Since(start).Seconds())
	return nil
}

func validateEvaluation(e *models.DomainEvaluation) error {
	if e == nil {
		return fmt.Errorf("evaluation nil")
	}
	if e.Domain == "" {
		return fmt.Errorf("domain empty")
	}
	if !strings.Contains(e.Domain, ".") {
		return fmt.Errorf("domain missing tld")
	}
	if e.EstimatedValue < 0 || e.ProfitPotential < 0 {
		return fmt.Errorf("negative value/profit")
	}
	return nil
}

func (p *ScanPipeline) allow(tld string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[tld]
	if last.IsZero() {
		p.lastSeen[tld] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[tld] = now
	return true
}

func evalTLD(domain string) string {
	if i := strings.LastIndex(domain, "."); i >= 0 {
		return domain[i+1:]
	}
	return "unknown"
}

package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"DomainFlip/internal/domain/models"
)

type recordingProc struct {
	mu   sync.Mutex
	got  []string
	fail bool
}

func (p *recordingProc) Process(_ context.Context, e *models.DomainEvaluation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream unavailable")
	}
	p.got = append(p.got, e.Domain)
	return nil
}

func (p *recordingProc) ProcessBatch(_ context.Context, evals []models.DomainEvaluation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream unavailable")
	}
	for i := range evals {
		p.got = append(p.got, evals[i].Domain)
	}
	return nil
}

func (p *recordingProc) setFail(v bool) {
	p.mu.Lock()
	p.fail = v
	p.mu.Unlock()
}

func (p *recordingProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

type nopMetrics struct{}

func (nopMetrics) RecordReposFetched(string, int)              {}
func (nopMetrics) RecordDomainsGenerated(int)                  {}
func (nopMetrics) RecordEvaluationSent(string, string)         {}
func (nopMetrics) RecordError(string)                          {}
func (nopMetrics) RecordPortfolio(int, int, float64, float64)  {}
func (nopMetrics) RecordLatency(string, float64)               {}

func TestPipelineForwards(t *testing.T) {
	proc := &recordingProc{}
	p := NewScanPipeline(proc, nopMetrics{})

	e := &models.DomainEvaluation{Domain: "ai.com", EstimatedValue: 800, ProfitPotential: 105}
	if err := p.Process(context.Background(), e); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(proc.got) != 1 || proc.got[0] != "ai.com" {
		t.Fatalf("downstream not called: %v", proc.got)
	}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &recordingProc{}
	p := NewScanPipeline(proc, nopMetrics{})

	cases := []*models.DomainEvaluation{
		nil,
		{Domain: ""},
		{Domain: "no-tld"},
		{Domain: "a.com", EstimatedValue: -1},
	}
	for i, e := range cases {
		if err := p.Process(context.Background(), e); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if len(proc.got) != 0 {
		t.Fatalf("invalid evaluations must not reach downstream")
	}
}

func TestPipelineBuffersOnFailure(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewScanPipeline(proc, nopMetrics{}, WithBufferSize(4))

	e := &models.DomainEvaluation{Domain: "tool.io", EstimatedValue: 700, ProfitPotential: 90}
	if err := p.Process(context.Background(), e); err == nil {
		t.Fatalf("expected downstream error")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected buffered evaluation, depth=%d", len(p.bufCh))
	}
}

func TestPipelineBatchSameTLDForwardsAll(t *testing.T) {
	proc := &recordingProc{}
	p := NewScanPipeline(proc, nopMetrics{}, WithMaxRPS(100), WithBufferSize(2000))

	evals := make([]models.DomainEvaluation, 50)
	for i := range evals {
		evals[i] = models.DomainEvaluation{
			Domain:         fmt.Sprintf("candidate%d.com", i),
			EstimatedValue: 300,
		}
	}
	if err := p.ProcessBatch(context.Background(), evals); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got := proc.count(); got != 50 {
		t.Fatalf("forwarded %d of 50 evaluations", got)
	}
}

func TestPipelineBatchSkipsInvalid(t *testing.T) {
	proc := &recordingProc{}
	p := NewScanPipeline(proc, nopMetrics{})

	evals := []models.DomainEvaluation{
		{Domain: "ai.com", EstimatedValue: 800},
		{Domain: "no-tld", EstimatedValue: 100},
		{Domain: "tool.io", EstimatedValue: 700},
	}
	if err := p.ProcessBatch(context.Background(), evals); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got := proc.count(); got != 2 {
		t.Fatalf("expected 2 forwarded, got %d (%v)", got, proc.got)
	}
}

func TestPipelineFlushesBufferAfterStart(t *testing.T) {
	proc := &recordingProc{fail: true}
	p := NewScanPipeline(proc, nopMetrics{}, WithBufferSize(4))

	e := &models.DomainEvaluation{Domain: "ai.com", EstimatedValue: 800, ProfitPotential: 105}
	if err := p.Process(context.Background(), e); err == nil {
		t.Fatalf("expected downstream error")
	}
	proc.setFail(false)

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for proc.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("buffered evaluation never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	proc.mu.Lock()
	flushed := proc.got[0]
	proc.mu.Unlock()
	if flushed != "ai.com" {
		t.Fatalf("flushed wrong evaluation: %q", flushed)
	}
}

func TestPipelineThrottlesPerTLD(t *testing.T) {
	proc := &recordingProc{}
	p := NewScanPipeline(proc, nopMetrics{}, WithMaxRPS(1))

	a := &models.DomainEvaluation{Domain: "one.com", EstimatedValue: 300}
	b := &models.DomainEvaluation{Domain: "two.com", EstimatedValue: 300}
	c := &models.DomainEvaluation{Domain: "three.io", EstimatedValue: 250}

	if err := p.Process(context.Background(), a); err != nil {
		t.Fatalf("first: %v", err)
	}
	// same TLD within the window: dropped without error
	if err := p.Process(context.Background(), b); err != nil {
		t.Fatalf("throttled should not error: %v", err)
	}
	// different TLD passes
	if err := p.Process(context.Background(), c); err != nil {
		t.Fatalf("other tld: %v", err)
	}
	if len(proc.got) != 2 {
		t.Fatalf("expected 2 forwarded, got %d (%v)", len(proc.got), proc.got)
	}
}

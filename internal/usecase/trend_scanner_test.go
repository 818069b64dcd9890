package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"DomainFlip/internal/domain/models"
	mid "DomainFlip/internal/middleware"
	"DomainFlip/internal/services/flipping"
	applogger "DomainFlip/pkg/logger"
)

type fakeSource struct {
	repos map[string][]models.Repo
	fail  map[string]bool
}

func (f *fakeSource) SearchRepos(_ context.Context, query string) ([]models.Repo, error) {
	if f.fail[query] {
		return nil, fmt.Errorf("boom")
	}
	return f.repos[query], nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []models.DomainEvaluation
}

func (f *fakePublisher) Publish(_ context.Context, e *models.DomainEvaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, *e)
	return nil
}

func (f *fakePublisher) PublishBatch(_ context.Context, evals []models.DomainEvaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, evals...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordReposFetched(string, int)      {}
func (nopMetrics) RecordDomainsGenerated(int)          {}
func (nopMetrics) RecordEvaluationSent(string, string) {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordPortfolio(int, int, float64, float64) {
}
func (nopMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestScanner(t *testing.T, src *fakeSource, queries []string, opts ...ScannerOption) (*TrendScanner, *fakePublisher) {
	t.Helper()
	val, err := flipping.NewValuator(128)
	if err != nil {
		t.Fatalf("valuator: %v", err)
	}
	pub := &fakePublisher{}
	proc := NewEvaluationProcessor(pub, nil, nopMetrics{}, "kafka")
	s := NewTrendScanner(src, val, proc, nopMetrics{}, testLogger(t), queries, opts...)
	return s, pub
}

func TestScanProducesStrategy(t *testing.T) {
	src := &fakeSource{repos: map[string][]models.Repo{
		"ai tools": {
			{Name: "ai-image-tool", Description: "Generate images with artificial intelligence"},
			{Name: "saas-billing", Description: "Subscription management"},
		},
	}}
	s, pub := newTestScanner(t, src, []string{"ai tools"})

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(r.QueryErrors) != 0 {
		t.Fatalf("unexpected query errors: %v", r.QueryErrors)
	}
	if len(r.Trends) == 0 {
		t.Fatalf("expected trends")
	}
	if len(r.Evaluations) == 0 || len(r.Evaluations) > 50 {
		t.Fatalf("evaluations out of range: %d", len(r.Evaluations))
	}
	if r.Strategy == nil {
		t.Fatalf("expected strategy")
	}
	for i := 1; i < len(r.Strategy.Portfolio); i++ {
		if r.Strategy.Portfolio[i].ProfitPotential > r.Strategy.Portfolio[i-1].ProfitPotential {
			t.Fatalf("portfolio not sorted at %d", i)
		}
	}
	for _, e := range r.Strategy.Portfolio {
		if e.ProfitPotential <= 500 {
			t.Fatalf("portfolio entry below threshold: %v", e.ProfitPotential)
		}
	}
	if len(pub.published) != len(r.Evaluations) {
		t.Fatalf("published %d, evaluated %d", len(pub.published), len(r.Evaluations))
	}
	for _, e := range r.Evaluations {
		if e.ScanID != r.ScanID {
			t.Fatalf("evaluation missing scan id")
		}
	}
}

func TestScanSurfacesQueryErrors(t *testing.T) {
	src := &fakeSource{
		repos: map[string][]models.Repo{"good": {{Name: "ai-app"}}},
		fail:  map[string]bool{"bad": true},
	}
	s, _ := newTestScanner(t, src, []string{"good", "bad"})

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(r.QueryErrors) != 1 {
		t.Fatalf("expected 1 query error, got %d", len(r.QueryErrors))
	}
	if _, ok := r.QueryErrors["bad"]; !ok {
		t.Fatalf("missing error for failed query: %v", r.QueryErrors)
	}
	// seed keywords keep the scan alive even with a failed query
	if len(r.Trends) == 0 {
		t.Fatalf("expected trends from seeds")
	}
}

func TestScanAllQueriesFailStillProduces(t *testing.T) {
	src := &fakeSource{fail: map[string]bool{"q1": true, "q2": true}}
	s, _ := newTestScanner(t, src, []string{"q1", "q2"})

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(r.QueryErrors) != 2 {
		t.Fatalf("expected 2 query errors, got %d", len(r.QueryErrors))
	}
	if len(r.Trends) == 0 || r.Strategy == nil {
		t.Fatalf("seed keywords should still drive a full result")
	}
}

func TestLatestUsesCache(t *testing.T) {
	src := &fakeSource{}
	s, _ := newTestScanner(t, src, nil)

	first, err := s.Latest(context.Background(), false)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	second, err := s.Latest(context.Background(), false)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if first.ScanID != second.ScanID {
		t.Fatalf("expected cached result, got new scan %s vs %s", first.ScanID, second.ScanID)
	}

	forced, err := s.Latest(context.Background(), true)
	if err != nil {
		t.Fatalf("latest refresh: %v", err)
	}
	if forced.ScanID == first.ScanID {
		t.Fatalf("refresh should run a new scan")
	}
}

func TestScanThroughPipelineForwardsAll(t *testing.T) {
	val, err := flipping.NewValuator(128)
	if err != nil {
		t.Fatalf("valuator: %v", err)
	}
	pub := &fakePublisher{}
	proc := NewEvaluationProcessor(pub, nil, nopMetrics{}, "kafka")
	pipe := mid.NewScanPipeline(proc, nopMetrics{}, mid.WithMaxRPS(100))
	src := &fakeSource{}
	s := NewTrendScanner(src, val, proc, nopMetrics{}, testLogger(t), nil, WithPipeline(pipe))

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	// the pipeline's per-TLD throttle must not thin out a scan batch
	if len(pub.published) != len(r.Evaluations) {
		t.Fatalf("published %d of %d evaluations", len(pub.published), len(r.Evaluations))
	}
	if len(r.Evaluations) < 10 {
		t.Fatalf("expected a full candidate batch, got %d", len(r.Evaluations))
	}
}

func TestScanKeepsSeedDuplicates(t *testing.T) {
	src := &fakeSource{repos: map[string][]models.Repo{
		"saas": {{Name: "saas-billing", Description: "saas subscription billing"}},
	}}
	s, _ := newTestScanner(t, src, []string{"saas"}, WithTrendLimit(50))

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	n := 0
	for _, tr := range r.Trends {
		if tr.Keyword == "saas" {
			n++
		}
	}
	// "saas" is both extracted from the repo and present in the seed list;
	// the two sources are kept as separate trend records
	if n != 2 {
		t.Fatalf("expected saas from both sources, got %d occurrences", n)
	}
}

func TestScanMaxCandidates(t *testing.T) {
	src := &fakeSource{}
	s, _ := newTestScanner(t, src, nil, WithMaxCandidates(10))

	r, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(r.Evaluations) != 10 {
		t.Fatalf("expected 10 evaluations, got %d", len(r.Evaluations))
	}
}

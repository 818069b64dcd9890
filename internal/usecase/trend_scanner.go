package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"DomainFlip/internal/domain/models"
	drepo "DomainFlip/internal/domain/repository"
	domsvc "DomainFlip/internal/domain/service"
	mid "DomainFlip/internal/middleware"
	"DomainFlip/internal/service/cache"
	"DomainFlip/internal/services/flipping"
	applogger "DomainFlip/pkg/logger"
)

const lastScanKey = "scan:last"

// Notifier receives completed scan results, e.g. to push them to
// connected WebSocket clients. Implementations must not block.
type Notifier interface {
	NotifyScan(r *models.ScanResult)
}

// ScannerOption configures TrendScanner.
type ScannerOption func(*TrendScanner)

// TrendScanner runs the full scan pass: search trending repositories,
// extract and rank keywords, generate candidate domains, evaluate them,
// and assemble a flipping strategy.
type TrendScanner struct {
	source   drepo.TrendSource
	valuator domsvc.Valuator
	proc     *EvaluationProcessor
	pipe     *mid.ScanPipeline
	metrics  drepo.Metrics
	log      *applogger.Logger
	notifier Notifier
	cache    *cache.TTLCache
	persist  cache.BytesCache

	queries       []string
	trendLimit    int
	maxCandidates int
	cacheTTL      time.Duration
}

// NewTrendScanner creates a new TrendScanner instance.
func NewTrendScanner(
	source drepo.TrendSource,
	valuator domsvc.Valuator,
	proc *EvaluationProcessor,
	metrics drepo.Metrics,
	log *applogger.Logger,
	queries []string,
	opts ...ScannerOption,
) *TrendScanner {
	s := &TrendScanner{
		source:        source,
		valuator:      valuator,
		proc:          proc,
		metrics:       metrics,
		log:           log,
		cache:         cache.NewTTLCache(),
		queries:       queries,
		trendLimit:    flipping.DefaultTrendLimit,
		maxCandidates: 50,
		cacheTTL:      5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPipeline routes evaluations through a scan pipeline instead of the
// processor directly.
func WithPipeline(p *mid.ScanPipeline) ScannerOption {
	return func(s *TrendScanner) { s.pipe = p }
}

// WithNotifier sets a notifier for completed scans.
func WithNotifier(n Notifier) ScannerOption {
	return func(s *TrendScanner) { s.notifier = n }
}

// WithMaxCandidates caps how many generated domains get evaluated per scan.
func WithMaxCandidates(n int) ScannerOption {
	return func(s *TrendScanner) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithTrendLimit caps how many ranked trends seed the generator.
func WithTrendLimit(n int) ScannerOption {
	return func(s *TrendScanner) {
		if n > 0 {
			s.trendLimit = n
		}
	}
}

// WithPersistentCache additionally stores the serialized scan in an
// external cache so the last strategy survives restarts.
func WithPersistentCache(c cache.BytesCache) ScannerOption {
	return func(s *TrendScanner) { s.persist = c }
}

// WithCacheTTL sets how long a finished scan stays served from cache.
func WithCacheTTL(d time.Duration) ScannerOption {
	return func(s *TrendScanner) {
		if d > 0 {
			s.cacheTTL = d
		}
	}
}

// Scan runs one full scan pass. Individual query failures are recorded in
// ScanResult.QueryErrors and do not abort the scan; the seed keywords
// guarantee the pipeline still produces trends.
func (s *TrendScanner) Scan(ctx context.Context) (*models.ScanResult, error) {
	start := time.Now()
	result := &models.ScanResult{
		ScanID:      fmt.Sprintf("scan-%d", start.UnixNano()),
		StartedAt:   start,
		QueryErrors: make(map[string]string),
	}

	keywords := make([]string, 0, 64)
	for _, q := range s.queries {
		repos, err := s.source.SearchRepos(ctx, q)
		if err != nil {
			result.QueryErrors[q] = err.Error()
			s.metrics.RecordError("search")
			s.log.Warn("search query failed",
				applogger.String("query", q),
				applogger.Error(err),
			)
			continue
		}
		s.metrics.RecordReposFetched(q, len(repos))
		for _, repo := range repos {
			keywords = append(keywords, flipping.ExtractKeywords(repo)...)
		}
	}
	// only the extracted pool is deduplicated; a keyword that also appears
	// in the seeds keeps both trend records
	keywords = flipping.Dedupe(keywords)
	keywords = append(keywords, flipping.SeedKeywords()...)

	result.Trends = flipping.RankTrends(keywords, s.trendLimit)

	candidates := flipping.GenerateCandidates(result.Trends)
	s.metrics.RecordDomainsGenerated(len(candidates))
	if len(candidates) > s.maxCandidates {
		candidates = candidates[:s.maxCandidates]
	}

	result.Evaluations = make([]models.DomainEvaluation, 0, len(candidates))
	for _, domain := range candidates {
		e := s.valuator.Evaluate(domain)
		e.ScanID = result.ScanID
		e.EvaluatedAt = time.Now()
		result.Evaluations = append(result.Evaluations, e)
	}

	// one backend call per scan; every evaluation must land
	if err := s.forward(ctx, result.Evaluations); err != nil {
		s.log.Error("forward evaluations failed",
			applogger.Int("count", len(result.Evaluations)),
			applogger.Error(err),
		)
	}

	result.Strategy = BuildStrategy(result.Evaluations, time.Now())
	result.FinishedAt = time.Now()

	s.metrics.RecordPortfolio(
		len(result.Strategy.Portfolio),
		result.Strategy.TotalInvestment,
		result.Strategy.ProjectedProfit,
		result.Strategy.ROIPercentage,
	)
	s.metrics.RecordLatency("scan", result.FinishedAt.Sub(start).Seconds())

	s.cache.Set(lastScanKey, result, s.cacheTTL)
	if s.persist != nil {
		if b, err := json.Marshal(result); err == nil {
			if err := s.persist.SetBytes(lastScanKey, b, s.cacheTTL); err != nil {
				s.log.Warn("persist scan failed", applogger.Error(err))
			}
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyScan(result)
	}

	s.log.Info("scan finished",
		applogger.String("scan_id", result.ScanID),
		applogger.Int("trends", len(result.Trends)),
		applogger.Int("evaluated", len(result.Evaluations)),
		applogger.Int("portfolio", len(result.Strategy.Portfolio)),
		applogger.Int("failed_queries", len(result.QueryErrors)),
		applogger.Duration("took", result.FinishedAt.Sub(start)),
	)

	return result, nil
}

// Last returns the most recent scan result still within its TTL, or nil.
func (s *TrendScanner) Last() *models.ScanResult {
	if v, ok := s.cache.Get(lastScanKey); ok {
		if r, ok2 := v.(*models.ScanResult); ok2 {
			return r
		}
	}
	if s.persist != nil {
		if b, ok, err := s.persist.GetBytes(lastScanKey); err == nil && ok {
			var r models.ScanResult
			if err := json.Unmarshal(b, &r); err == nil {
				s.cache.Set(lastScanKey, &r, s.cacheTTL)
				return &r
			}
		}
	}
	return nil
}

// Latest returns the cached scan or runs a fresh one when the cache is
// empty or refresh is forced.
func (s *TrendScanner) Latest(ctx context.Context, refresh bool) (*models.ScanResult, error) {
	if !refresh {
		if r := s.Last(); r != nil {
			return r, nil
		}
	}
	return s.Scan(ctx)
}

func (s *TrendScanner) forward(ctx context.Context, evals []models.DomainEvaluation) error {
	if len(evals) == 0 {
		return nil
	}
	if s.pipe != nil {
		return s.pipe.ProcessBatch(ctx, evals)
	}
	return s.proc.ProcessBatch(ctx, evals)
}

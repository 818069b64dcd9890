package api

import (
	"time"

	"github.com/labstack/echo/v4"

	models "DomainFlip/internal/domain/models"
	domrepo "DomainFlip/internal/domain/repository"
	domsvc "DomainFlip/internal/domain/service"
	"DomainFlip/internal/report"
	"DomainFlip/internal/usecase"
	xhttp "DomainFlip/pkg/http"
	xlogger "DomainFlip/pkg/logger"
)

// StrategyEchoHandler exposes the scan pipeline over HTTP.
type StrategyEchoHandler struct {
	logger   *xlogger.Logger
	scanner  *usecase.TrendScanner
	valuator domsvc.Valuator
	store    domrepo.EvaluationStore
	stream   *StreamHub
}

func NewStrategyEchoHandler(
	logger *xlogger.Logger,
	scanner *usecase.TrendScanner,
	valuator domsvc.Valuator,
	store domrepo.EvaluationStore,
	stream *StreamHub,
) *StrategyEchoHandler {
	return &StrategyEchoHandler{
		logger:   logger,
		scanner:  scanner,
		valuator: valuator,
		store:    store,
		stream:   stream,
	}
}

func (h *StrategyEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/strategy", h.Strategy)
	g.GET("/trends", h.Trends)
	g.GET("/evaluate", h.Evaluate)
	g.GET("/portfolio", h.Portfolio)
	g.GET("/report", h.Report)
	if h.stream != nil {
		g.GET("/stream", h.stream.Serve)
	}
}

// Health reports liveness, including storage health when history is wired.
func (h *StrategyEchoHandler) Health(c echo.Context) error {
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.NewInternalError("storage unhealthy", err))
		}
	}
	return xhttp.Data(c, map[string]string{"status": "ok"})
}

// Strategy returns the latest flipping strategy, running a fresh scan when
// the cache is cold or ?refresh=true.
func (h *StrategyEchoHandler) Strategy(c echo.Context) error {
	req, verr := xhttp.ReadAndValidateRequest[models.StrategyRequest](c)
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	r, err := h.scanner.Latest(c.Request().Context(), req.Refresh)
	if err != nil {
		h.logger.Error("strategy scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewUpstreamError("scan failed", err))
	}
	return xhttp.Data(c, r.Strategy)
}

// Trends returns the ranked trends of the latest scan.
func (h *StrategyEchoHandler) Trends(c echo.Context) error {
	req, verr := xhttp.ReadAndValidateRequest[models.TrendsRequest](c)
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	r, err := h.scanner.Latest(c.Request().Context(), false)
	if err != nil {
		h.logger.Error("trends scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewUpstreamError("scan failed", err))
	}

	trends := r.Trends
	if len(trends) > req.Limit {
		trends = trends[:req.Limit]
	}
	return xhttp.List(c, trends, len(trends))
}

// Evaluate appraises a single domain on demand. Pure arithmetic, no scan.
func (h *StrategyEchoHandler) Evaluate(c echo.Context) error {
	req, verr := xhttp.ReadAndValidateRequest[models.EvaluateRequest](c)
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	e := h.valuator.Evaluate(req.Domain)
	return xhttp.Data(c, e)
}

// Portfolio returns stored evaluations, filtered by scan and time range.
func (h *StrategyEchoHandler) Portfolio(c echo.Context) error {
	req, verr := xhttp.ReadAndValidateRequest[models.PortfolioHistoryRequest](c)
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.NotFound(c, "evaluation history not enabled")
	}

	now := time.Now()
	from := xhttp.ParseTimeDefault(req.From, now.Add(-24*time.Hour))
	to := xhttp.ParseTimeDefault(req.To, now)

	evals, err := h.store.Query(c.Request().Context(), req.ScanID, from, to, req.Limit)
	if err != nil {
		h.logger.Error("portfolio query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.List(c, evals, len(evals))
}

// Report renders the latest scan as a Markdown document.
func (h *StrategyEchoHandler) Report(c echo.Context) error {
	r, err := h.scanner.Latest(c.Request().Context(), false)
	if err != nil {
		h.logger.Error("report scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NewUpstreamError("scan failed", err))
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/markdown; charset=utf-8")
	c.Response().WriteHeader(200)
	return report.NewMarkdownWriter(c.Response()).Write(r)
}

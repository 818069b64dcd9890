package github

import (
	"context"
	"fmt"
	"time"

	"DomainFlip/internal/domain/models"
	drepo "DomainFlip/internal/domain/repository"
	"DomainFlip/internal/service/ratelimit"
	xhttp "DomainFlip/pkg/http"
)

const searchPath = "/search/repositories"

// Option configures Client.
type Option func(*Client)

// Client implements a TrendSource backed by the GitHub search API.
type Client struct {
	token        string
	baseURL      string
	perQuery     int
	timeout      time.Duration
	limiter      *ratelimit.Limiter
	rateCapacity float64
	rateRefill   float64
	http         *xhttp.Client
}

// New creates a new GitHub TrendSource. The token is passed explicitly;
// nothing is read from the process environment here.
func New(token, baseURL string, opts ...Option) drepo.TrendSource {
	c := &Client{
		token:        token,
		baseURL:      baseURL,
		perQuery:     10,
		timeout:      15 * time.Second,
		rateCapacity: 10,
		rateRefill:   0.5,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout))
	return c
}

// WithPerQuery sets how many repositories to request per search query.
func WithPerQuery(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perQuery = n
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit sets a token bucket applied per search query.
func WithRateLimit(l *ratelimit.Limiter, capacity, refillPerSec float64) Option {
	return func(c *Client) {
		c.limiter = l
		c.rateCapacity = capacity
		c.rateRefill = refillPerSec
	}
}

type searchItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
}

// SearchRepos fetches repositories matching the query, sorted by stars.
// Errors are returned to the caller, never swallowed.
func (c *Client) SearchRepos(ctx context.Context, query string) ([]models.Repo, error) {
	if c.limiter != nil && !c.limiter.Allow("github:search", c.rateCapacity, c.rateRefill) {
		return nil, fmt.Errorf("github search %q: rate limited", query)
	}

	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + searchPath,
		Headers: map[string]string{
			"Accept": "application/vnd.github+json",
		},
		QueryParams: map[string][]string{
			"q":        {query},
			"sort":     {"stars"},
			"order":    {"desc"},
			"per_page": {fmt.Sprintf("%d", c.perQuery)},
		},
	}
	if c.token != "" {
		opts.Headers["Authorization"] = "token " + c.token
	}

	var resp searchResponse
	if err := c.http.SendAndParse(ctx, opts, &resp); err != nil {
		return nil, fmt.Errorf("github search %q: %w", query, err)
	}

	repos := make([]models.Repo, 0, len(resp.Items))
	for _, item := range resp.Items {
		repos = append(repos, models.Repo{Name: item.Name, Description: item.Description})
	}
	return repos, nil
}

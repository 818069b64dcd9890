package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type StrategyRequest struct {
	Refresh bool `query:"refresh" json:"refresh"`
}

type TrendsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}

type EvaluateRequest struct {
	Domain string `query:"domain" json:"domain" validate:"required,min=4,max=253"`
}

type PortfolioHistoryRequest struct {
	ScanID string `query:"scan_id" json:"scan_id"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	Limit  int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}

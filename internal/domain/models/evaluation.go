package models

import "time"

// Sell-time buckets derived from estimated value.
const (
	SellFast   = "1-3 months"
	SellMedium = "3-6 months"
	SellSlow   = "6-12 months"
)

// DomainEvaluation is the heuristic appraisal of a single candidate domain.
// All scored fields are pure functions of the domain string; re-evaluating
// the same string always yields the same numbers.
type DomainEvaluation struct {
	Domain            string   `json:"domain"`
	EstimatedValue    int      `json:"estimated_value"`
	RegistrationCost  string   `json:"registration_cost"`
	ProfitPotential   float64  `json:"profit_potential"`
	TimeToSell        string   `json:"time_to_sell"`
	MarketingStrategy []string `json:"marketing_strategy"`

	// Scan bookkeeping, not part of the scoring itself.
	ScanID      string    `json:"scan_id,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at,omitempty"`
}

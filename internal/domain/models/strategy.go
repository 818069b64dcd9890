package models

import "time"

// PortfolioManagement is the fixed operating configuration attached to every
// strategy. The values are static guidance, not computed.
type PortfolioManagement struct {
	AcquisitionBudget  string `json:"acquisition_budget"`
	RenewalStrategy    string `json:"renewal_strategy"`
	SellingTimeline    string `json:"selling_timeline"`
	ProfitReinvestment string `json:"profit_reinvestment"`
}

// ScalingPlan is the fixed multi-period growth plan attached to every strategy.
type ScalingPlan struct {
	Month1To3  string `json:"month_1_3"`
	Month4To6  string `json:"month_4_6"`
	Month7To12 string `json:"month_7_12"`
	Year2      string `json:"year_2"`
}

// FlippingStrategy aggregates the ranked portfolio with its investment totals.
// Portfolio is ordered highest profit potential first and holds at most the
// configured cap (20). An empty portfolio is a valid result with zero totals.
type FlippingStrategy struct {
	Portfolio           []DomainEvaluation  `json:"portfolio"`
	TotalInvestment     int                 `json:"total_investment"`
	ProjectedProfit     float64             `json:"projected_profit"`
	ROIPercentage       float64             `json:"roi_percentage"`
	PortfolioManagement PortfolioManagement `json:"portfolio_management"`
	ScalingPlan         ScalingPlan         `json:"scaling_plan"`
	GeneratedAt         time.Time           `json:"generated_at"`
}

// Empty reports whether no candidate cleared the profit threshold.
func (s *FlippingStrategy) Empty() bool { return len(s.Portfolio) == 0 }

// ScanResult is the outcome of one full scan pass. QueryErrors distinguishes
// "search failed" from "no trends found": a query that errored is recorded
// here instead of silently contributing zero results.
type ScanResult struct {
	ScanID      string             `json:"scan_id"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Trends      []TrendRecord      `json:"trends"`
	Evaluations []DomainEvaluation `json:"evaluations"`
	Strategy    *FlippingStrategy  `json:"strategy"`
	QueryErrors map[string]string  `json:"query_errors,omitempty"`
}

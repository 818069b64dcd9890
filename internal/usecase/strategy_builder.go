package usecase

import (
	"math"
	"sort"
	"time"

	"DomainFlip/internal/domain/models"
	"DomainFlip/internal/services/flipping"
)

const (
	// Minimum profit potential for a candidate to enter the portfolio.
	profitThreshold = 500.0
	// Maximum portfolio size.
	portfolioCap = 20
)

var fixedManagement = models.PortfolioManagement{
	AcquisitionBudget:  "$300/month",
	RenewalStrategy:    "Renew high-value domains only",
	SellingTimeline:    "6-12 months average hold time",
	ProfitReinvestment: "50% reinvested in new domains",
}

var fixedScalingPlan = models.ScalingPlan{
	Month1To3:  "Acquire and test initial portfolio",
	Month4To6:  "Scale successful domain types",
	Month7To12: "Focus on premium domain acquisitions",
	Year2:      "Expand to expired domain auctions",
}

// BuildStrategy filters evaluations to those clearing the profit threshold,
// ranks them by profit potential descending, and caps the portfolio. An empty
// portfolio is returned explicitly with zero totals instead of dividing by
// zero.
func BuildStrategy(evals []models.DomainEvaluation, now time.Time) *models.FlippingStrategy {
	selected := make([]models.DomainEvaluation, 0, len(evals))
	for _, e := range evals {
		if e.ProfitPotential > profitThreshold {
			selected = append(selected, e)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].ProfitPotential > selected[j].ProfitPotential
	})

	if len(selected) > portfolioCap {
		selected = selected[:portfolioCap]
	}

	s := &models.FlippingStrategy{
		Portfolio:           selected,
		PortfolioManagement: fixedManagement,
		ScalingPlan:         fixedScalingPlan,
		GeneratedAt:         now,
	}

	if len(selected) == 0 {
		return s
	}

	s.TotalInvestment = len(selected) * flipping.RegistrationCost
	for _, e := range selected {
		s.ProjectedProfit += e.ProfitPotential
	}
	s.ROIPercentage = round2(s.ProjectedProfit / float64(s.TotalInvestment) * 100)
	s.ProjectedProfit = round2(s.ProjectedProfit)

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package usecase

import (
	"testing"
	"time"

	"DomainFlip/internal/domain/models"
)

func eval(domain string, profit float64) models.DomainEvaluation {
	return models.DomainEvaluation{Domain: domain, ProfitPotential: profit}
}

func TestBuildStrategyFiltersAndSorts(t *testing.T) {
	evals := []models.DomainEvaluation{
		eval("low.com", 100),
		eval("mid.com", 600),
		eval("top.com", 735),
		eval("edge.com", 500), // threshold is strict
	}
	s := BuildStrategy(evals, time.Now())
	if len(s.Portfolio) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s.Portfolio))
	}
	if s.Portfolio[0].Domain != "top.com" || s.Portfolio[1].Domain != "mid.com" {
		t.Fatalf("wrong order: %s, %s", s.Portfolio[0].Domain, s.Portfolio[1].Domain)
	}
}

func TestBuildStrategyTotals(t *testing.T) {
	evals := []models.DomainEvaluation{
		eval("a.com", 600),
		eval("b.com", 735),
	}
	s := BuildStrategy(evals, time.Now())
	if s.TotalInvestment != 30 {
		t.Fatalf("investment: got %d", s.TotalInvestment)
	}
	if s.ProjectedProfit != 1335 {
		t.Fatalf("profit: got %v", s.ProjectedProfit)
	}
	if s.ROIPercentage != 4450 {
		t.Fatalf("roi: got %v", s.ROIPercentage)
	}
}

func TestBuildStrategyCap(t *testing.T) {
	evals := make([]models.DomainEvaluation, 0, 30)
	for i := 0; i < 30; i++ {
		evals = append(evals, eval("x.com", 600+float64(i)))
	}
	s := BuildStrategy(evals, time.Now())
	if len(s.Portfolio) != 20 {
		t.Fatalf("expected cap at 20, got %d", len(s.Portfolio))
	}
	if s.Portfolio[0].ProfitPotential != 629 {
		t.Fatalf("expected highest first, got %v", s.Portfolio[0].ProfitPotential)
	}
	if s.TotalInvestment != 300 {
		t.Fatalf("investment: got %d", s.TotalInvestment)
	}
}

func TestBuildStrategyEmpty(t *testing.T) {
	evals := []models.DomainEvaluation{
		eval("a.com", 100),
		eval("b.com", 400),
	}
	s := BuildStrategy(evals, time.Now())
	if !s.Empty() {
		t.Fatalf("expected empty strategy")
	}
	if s.TotalInvestment != 0 || s.ProjectedProfit != 0 || s.ROIPercentage != 0 {
		t.Fatalf("expected zero totals, got %d/%v/%v",
			s.TotalInvestment, s.ProjectedProfit, s.ROIPercentage)
	}
	if s.PortfolioManagement.AcquisitionBudget == "" {
		t.Fatalf("management plan should still be present")
	}
}

func TestBuildStrategyStableOrder(t *testing.T) {
	evals := []models.DomainEvaluation{
		eval("first.com", 600),
		eval("second.com", 600),
	}
	s := BuildStrategy(evals, time.Now())
	if s.Portfolio[0].Domain != "first.com" {
		t.Fatalf("equal profits should keep input order, got %s first", s.Portfolio[0].Domain)
	}
}

package flipping

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"DomainFlip/internal/domain/models"
	domsvc "DomainFlip/internal/domain/service"
)

// RegistrationCost is the assumed per-domain acquisition cost in dollars.
const RegistrationCost = 15

// registrationCostLabel is the display range shown on evaluations.
const registrationCostLabel = "$12-15"

// labelKeywords each add a value bonus when contained in the domain label.
// Containment checks are independent, so a label like "getaiapp" collects the
// bonus for "get", "ai", and "app". The double-counting is part of the scoring
// design.
var labelKeywords = []string{"ai", "app", "tool", "pro", "get", "use"}

// marketingStrategies is the fixed playbook attached to every evaluation.
var marketingStrategies = []string{
	"List on domain marketplaces (Sedo, Flippa)",
	"Direct outreach to relevant businesses",
	"Social media promotion",
	"Domain auction participation",
}

// EstimateValue appraises a domain string. Base 100; TLD bonus checked in
// priority order (.com 200, .ai 150, .io 100); short labels earn a length
// bonus; each label keyword found adds 200. Pure and deterministic.
func EstimateValue(domain string) int {
	value := 100

	switch {
	case strings.HasSuffix(domain, ".com"):
		value += 200
	case strings.HasSuffix(domain, ".ai"):
		value += 150
	case strings.HasSuffix(domain, ".io"):
		value += 100
	}

	label := Label(domain)
	switch {
	case len(label) <= 6:
		value += 300
	case len(label) <= 10:
		value += 100
	}

	for _, k := range labelKeywords {
		if strings.Contains(label, k) {
			value += 200
		}
	}

	return value
}

// ProfitPotential estimates resale profit for a given estimated value: the
// registration cost times a multiplier capped at 50x, minus the cost itself,
// never negative. Monotonically non-decreasing in value.
func ProfitPotential(estimatedValue int) float64 {
	multiplier := float64(estimatedValue) / 100
	if multiplier > 50 {
		multiplier = 50
	}
	profit := RegistrationCost*multiplier - RegistrationCost
	if profit < 0 {
		return 0
	}
	return profit
}

// SellTime buckets estimated value into an expected holding period.
func SellTime(estimatedValue int) string {
	switch {
	case estimatedValue > 500:
		return models.SellFast
	case estimatedValue > 200:
		return models.SellMedium
	default:
		return models.SellSlow
	}
}

// Label returns the part of the domain before the first dot.
func Label(domain string) string {
	if i := strings.IndexByte(domain, '.'); i >= 0 {
		return domain[:i]
	}
	return domain
}

// MarketingStrategies returns a copy of the fixed marketing playbook.
func MarketingStrategies() []string {
	out := make([]string, len(marketingStrategies))
	copy(out, marketingStrategies)
	return out
}

// Evaluate appraises a domain end to end. Availability is assumed, never
// checked against a registrar.
func Evaluate(domain string) models.DomainEvaluation {
	value := EstimateValue(domain)
	return models.DomainEvaluation{
		Domain:            domain,
		EstimatedValue:    value,
		RegistrationCost:  registrationCostLabel,
		ProfitPotential:   ProfitPotential(value),
		TimeToSell:        SellTime(value),
		MarketingStrategy: MarketingStrategies(),
	}
}

// Valuator memoizes Evaluate behind a bounded LRU. Safe because scoring is
// referentially transparent.
type Valuator struct {
	memo *lru.Cache[string, models.DomainEvaluation]
}

// NewValuator creates a Valuator with the given memo capacity.
func NewValuator(memoSize int) (*Valuator, error) {
	if memoSize <= 0 {
		memoSize = 1024
	}
	c, err := lru.New[string, models.DomainEvaluation](memoSize)
	if err != nil {
		return nil, err
	}
	return &Valuator{memo: c}, nil
}

// Evaluate returns the memoized evaluation for domain.
func (v *Valuator) Evaluate(domain string) models.DomainEvaluation {
	if e, ok := v.memo.Get(domain); ok {
		return e
	}
	e := Evaluate(domain)
	v.memo.Add(domain, e)
	return e
}

var _ domsvc.Valuator = (*Valuator)(nil)

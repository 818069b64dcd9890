package flipping

import (
	"sort"
	"strings"

	"DomainFlip/internal/domain/models"
)

// DefaultTrendLimit caps how many ranked trend records seed domain generation.
const DefaultTrendLimit = 20

// Term sets used by the trend scorer. Matching is substring containment, so a
// keyword like "ai-agents" triggers the "ai" bonus.
var (
	techTerms        = []string{"ai", "automation", "saas", "app"}
	businessTerms    = []string{"income", "money", "profit", "business"}
	highValueTerms   = []string{"ai", "crypto", "saas", "app"}
	mediumValueTerms = []string{"tool", "pro", "business"}
)

// ScoreTrend computes the commercial potential of a keyword: base 50, +30 for
// technology terms, +25 for business terms, +20 when short enough to make a
// good domain label, capped at 100.
func ScoreTrend(keyword string) int {
	score := 50
	if containsAny(keyword, techTerms) {
		score += 30
	}
	if containsAny(keyword, businessTerms) {
		score += 25
	}
	if len(keyword) <= 8 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Classify buckets a keyword into a commercial value tier. High beats medium;
// anything else is low.
func Classify(keyword string) models.CommercialValue {
	switch {
	case containsAny(keyword, highValueTerms):
		return models.CommercialHigh
	case containsAny(keyword, mediumValueTerms):
		return models.CommercialMedium
	default:
		return models.CommercialLow
	}
}

// RankTrends scores every keyword, sorts descending by score, and truncates
// to limit. The sort is stable so equal scores keep input order, making the
// ranking deterministic for a given keyword sequence.
func RankTrends(keywords []string, limit int) []models.TrendRecord {
	records := make([]models.TrendRecord, 0, len(keywords))
	for _, k := range keywords {
		records = append(records, models.TrendRecord{
			Keyword:         k,
			Score:           ScoreTrend(k),
			CommercialValue: Classify(k),
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

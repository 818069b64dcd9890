package flipping

import "DomainFlip/internal/domain/models"

// Generation bounds. The top singleKeywords records get template variants; the
// top comboKeywords records are paired with the following comboPartners-1.
const (
	singleKeywords = 10
	comboKeywords  = 5
	comboPartners  = 8
)

// GenerateCandidates expands ranked trend records into candidate domain
// strings. Output order is deterministic given input order. Duplicate domains
// across keyword pairs are possible and intentionally kept.
func GenerateCandidates(trends []models.TrendRecord) []string {
	var out []string

	n := len(trends)
	for i := 0; i < n && i < singleKeywords; i++ {
		k := trends[i].Keyword
		out = append(out,
			k+".com",
			k+".ai",
			k+".io",
			"get"+k+".com",
			"use"+k+".com",
			k+"app.com",
			k+"tool.com",
			k+"pro.com",
		)
	}

	for i := 0; i < n && i < comboKeywords; i++ {
		for j := i + 1; j < n && j < comboPartners; j++ {
			a, b := trends[i].Keyword, trends[j].Keyword
			out = append(out, a+b+".com", a+"-"+b+".com")
		}
	}

	return out
}

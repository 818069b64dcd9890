package flipping

import (
	"strings"
	"unicode"

	"DomainFlip/internal/domain/models"
)

// maxKeywordsPerRepo bounds how many tokens a single repository contributes.
const maxKeywordsPerRepo = 5

// Seed trend lists merged into every scan alongside the extracted keywords.
var (
	seedTechTrends = []string{
		"ai-agents", "automation", "serverless", "nocode", "defi",
		"metaverse", "nft", "crypto", "blockchain", "web3",
		"saas", "productivity", "remote-work", "sustainability",
	}
	seedBusinessTrends = []string{
		"digital-nomad", "side-hustle", "passive-income", "ecommerce",
		"dropshipping", "affiliate", "influencer", "coaching",
	}
)

// SeedKeywords returns the static tech and business trend keywords.
func SeedKeywords() []string {
	out := make([]string, 0, len(seedTechTrends)+len(seedBusinessTrends))
	out = append(out, seedTechTrends...)
	out = append(out, seedBusinessTrends...)
	return out
}

// ExtractKeywords reduces a repository name and description to at most five
// lowercase tokens. Tokens must be longer than three characters and consist
// solely of letters. Hyphens act as word separators. Order follows the source
// text; no deduplication happens here.
func ExtractKeywords(repo models.Repo) []string {
	text := strings.ToLower(repo.Name + " " + repo.Description)
	text = strings.ReplaceAll(text, "-", " ")

	var out []string
	for _, w := range strings.Fields(text) {
		if len(w) > 3 && isAlpha(w) {
			out = append(out, w)
			if len(out) == maxKeywordsPerRepo {
				break
			}
		}
	}
	return out
}

// Dedupe removes repeated keywords preserving first-seen order. Used for the
// extracted keyword pool only; scoring itself tolerates duplicates.
func Dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

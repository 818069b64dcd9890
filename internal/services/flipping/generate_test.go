package flipping

import (
	"reflect"
	"testing"

	"DomainFlip/internal/domain/models"
)

func trendList(keywords ...string) []models.TrendRecord {
	out := make([]models.TrendRecord, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, models.TrendRecord{Keyword: k, Score: 50})
	}
	return out
}

func TestGenerateCandidatesSingleKeyword(t *testing.T) {
	got := GenerateCandidates(trendList("saas"))
	want := []string{
		"saas.com", "saas.ai", "saas.io",
		"getsaas.com", "usesaas.com",
		"saasapp.com", "saastool.com", "saaspro.com",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestGenerateCandidatesCombos(t *testing.T) {
	got := GenerateCandidates(trendList("ai", "web"))
	// 8 variants per keyword plus the single (ai,web) pair.
	if len(got) != 16+2 {
		t.Fatalf("got %d candidates, want 18", len(got))
	}
	if got[16] != "aiweb.com" || got[17] != "ai-web.com" {
		t.Fatalf("combo candidates = %v", got[16:])
	}
}

func TestGenerateCandidatesCounts(t *testing.T) {
	keywords := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	got := GenerateCandidates(trendList(keywords...))
	// Top 10 keywords x 8 variants; pairs (i<5, i<j<8): 7+6+5+4+3 = 25 pairs x 2.
	want := 10*8 + 25*2
	if len(got) != want {
		t.Fatalf("got %d candidates, want %d", len(got), want)
	}
}

func TestGenerateCandidatesDeterministic(t *testing.T) {
	trends := trendList("crypto", "defi", "nft")
	a := GenerateCandidates(trends)
	b := GenerateCandidates(trends)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("generation not deterministic")
	}
}

func TestGenerateCandidatesKeepsDuplicates(t *testing.T) {
	// Identical keywords produce identical domains; none are removed.
	got := GenerateCandidates(trendList("app", "app"))
	if got[0] != got[8] {
		t.Fatalf("expected duplicate variants, got %q and %q", got[0], got[8])
	}
	if len(got) != 16+2 {
		t.Fatalf("got %d candidates, want 18", len(got))
	}
}

func TestGenerateCandidatesEmpty(t *testing.T) {
	if got := GenerateCandidates(nil); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

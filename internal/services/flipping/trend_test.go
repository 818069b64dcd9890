package flipping

import (
	"testing"

	"DomainFlip/internal/domain/models"
)

func TestScoreTrendAI(t *testing.T) {
	// "ai": tech term (+30), len <= 8 (+20), base 50 -> 100.
	if got := ScoreTrend("ai"); got != 100 {
		t.Fatalf("score(ai) = %d, want 100", got)
	}
	if got := Classify("ai"); got != models.CommercialHigh {
		t.Fatalf("classify(ai) = %s, want high", got)
	}
}

func TestScoreTrendCap(t *testing.T) {
	// tech + business + short would exceed 100 without the cap.
	if got := ScoreTrend("appmoney"); got != 100 {
		t.Fatalf("score(appmoney) = %d, want 100", got)
	}
}

func TestScoreTrendBuckets(t *testing.T) {
	cases := []struct {
		keyword string
		want    int
	}{
		{"dropshipping", 50},        // no term hit, too long
		{"coaching", 70},            // short only
		{"passive-income", 75},      // business term, long
		{"automation", 80},          // tech term, long
		{"saas", 100},               // tech + short
		{"profit", 95},              // business + short
	}
	for _, c := range cases {
		if got := ScoreTrend(c.keyword); got != c.want {
			t.Errorf("score(%s) = %d, want %d", c.keyword, got, c.want)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		keyword string
		want    models.CommercialValue
	}{
		{"crypto", models.CommercialHigh},
		{"saas", models.CommercialHigh},
		{"protool", models.CommercialMedium}, // medium terms only
		{"business", models.CommercialMedium},
		{"metaverse", models.CommercialLow},
		{"approved", models.CommercialHigh}, // contains "app": high wins over anything
	}
	for _, c := range cases {
		if got := Classify(c.keyword); got != c.want {
			t.Errorf("classify(%s) = %s, want %s", c.keyword, got, c.want)
		}
	}
}

func TestRankTrendsOrderAndLimit(t *testing.T) {
	keywords := []string{"dropshipping", "ai", "coaching", "saas", "metaverse"}
	got := RankTrends(keywords, 3)
	if len(got) != 3 {
		t.Fatalf("ranked %d records, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("ranking not descending at %d: %+v", i, got)
		}
	}
	// "ai" and "saas" both score 100; stable sort keeps input order.
	if got[0].Keyword != "ai" || got[1].Keyword != "saas" {
		t.Fatalf("unexpected top records: %+v", got[:2])
	}
}

func TestRankTrendsEmpty(t *testing.T) {
	if got := RankTrends(nil, DefaultTrendLimit); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %d", len(got))
	}
}

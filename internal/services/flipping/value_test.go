package flipping

import (
	"reflect"
	"testing"
)

func TestEstimateValueAICom(t *testing.T) {
	// "ai" label: len 2 (+300), .com (+200), contains "ai" (+200), base 100.
	got := EstimateValue("ai.com")
	if got != 800 {
		t.Fatalf("estimate ai.com = %d, want 800", got)
	}
}

func TestEstimateValueComFloor(t *testing.T) {
	// Any .com gets at least base + TLD bonus.
	for _, d := range []string{"x.com", "somethingverylongindeed.com", "qq.com"} {
		if got := EstimateValue(d); got < 300 {
			t.Fatalf("estimate %s = %d, want >= 300", d, got)
		}
	}
}

func TestEstimateValueTLDPriority(t *testing.T) {
	cases := []struct {
		domain string
		want   int
	}{
		{"saas.ai", 100 + 150 + 300},              // .ai bonus, short label, no label keyword
		{"tool.io", 100 + 100 + 300 + 200},        // .io, short, "tool"
		{"binder.org", 100 + 300},                 // unknown TLD, short label only
		{"marketplace.com", 100 + 200},            // 11-char label, no length bonus
		{"getaiapp.com", 100 + 200 + 100 + 3*200}, // "get"+"ai"+"app" each count
	}
	for _, c := range cases {
		if got := EstimateValue(c.domain); got != c.want {
			t.Errorf("estimate %s = %d, want %d", c.domain, got, c.want)
		}
	}
}

func TestEstimateValueDeterministic(t *testing.T) {
	a := EstimateValue("blockchain-tool.com")
	b := EstimateValue("blockchain-tool.com")
	if a != b {
		t.Fatalf("estimate not deterministic: %d vs %d", a, b)
	}
}

func TestProfitPotential(t *testing.T) {
	// ai.com: value 800 -> 15*8 - 15 = 105.
	if got := ProfitPotential(800); got != 105 {
		t.Fatalf("profit(800) = %v, want 105", got)
	}
	// Multiplier caps at 50x.
	if got := ProfitPotential(10000); got != 15*50-15 {
		t.Fatalf("profit(10000) = %v, want %v", got, float64(15*50-15))
	}
	// Never negative.
	if got := ProfitPotential(0); got != 0 {
		t.Fatalf("profit(0) = %v, want 0", got)
	}
}

func TestProfitPotentialMonotonic(t *testing.T) {
	prev := -1.0
	for v := 0; v <= 6000; v += 50 {
		p := ProfitPotential(v)
		if p < prev {
			t.Fatalf("profit decreased at value %d: %v < %v", v, p, prev)
		}
		if p < 0 {
			t.Fatalf("profit negative at value %d: %v", v, p)
		}
		prev = p
	}
}

func TestSellTime(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{800, "1-3 months"},
		{501, "1-3 months"},
		{500, "3-6 months"},
		{201, "3-6 months"},
		{200, "6-12 months"},
		{0, "6-12 months"},
	}
	for _, c := range cases {
		if got := SellTime(c.value); got != c.want {
			t.Errorf("sell time for %d = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestEvaluateAICom(t *testing.T) {
	e := Evaluate("ai.com")
	if e.EstimatedValue != 800 {
		t.Fatalf("value = %d, want 800", e.EstimatedValue)
	}
	if e.ProfitPotential != 105 {
		t.Fatalf("profit = %v, want 105", e.ProfitPotential)
	}
	if e.TimeToSell != "1-3 months" {
		t.Fatalf("time to sell = %q, want 1-3 months", e.TimeToSell)
	}
	if e.RegistrationCost != "$12-15" {
		t.Fatalf("registration cost = %q", e.RegistrationCost)
	}
	if len(e.MarketingStrategy) != 4 {
		t.Fatalf("marketing strategy has %d entries, want 4", len(e.MarketingStrategy))
	}
}

func TestValuatorMemoizes(t *testing.T) {
	v, err := NewValuator(8)
	if err != nil {
		t.Fatalf("new valuator: %v", err)
	}
	a := v.Evaluate("crypto.io")
	b := v.Evaluate("crypto.io")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("memoized evaluation differs: %+v vs %+v", a, b)
	}
	if !reflect.DeepEqual(a, Evaluate("crypto.io")) {
		t.Fatalf("memoized evaluation differs from direct evaluation")
	}
}

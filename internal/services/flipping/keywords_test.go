package flipping

import (
	"reflect"
	"testing"

	"DomainFlip/internal/domain/models"
)

func TestExtractKeywords(t *testing.T) {
	repo := models.Repo{
		Name:        "awesome-ai-toolkit",
		Description: "A toolkit for building AI agents with no code2",
	}
	got := ExtractKeywords(repo)
	// "ai" is too short, "code2" is not alphabetic, hyphens split words.
	want := []string{"awesome", "toolkit", "toolkit", "building", "agents"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsCapsAtFive(t *testing.T) {
	repo := models.Repo{
		Name:        "alpha beta gamma delta epsilon zeta",
		Description: "omega",
	}
	got := ExtractKeywords(repo)
	if len(got) != 5 {
		t.Fatalf("got %d keywords, want 5", len(got))
	}
	if got[4] != "epsilon" {
		t.Fatalf("fifth keyword = %q, want epsilon", got[4])
	}
}

func TestExtractKeywordsEmptyDescription(t *testing.T) {
	got := ExtractKeywords(models.Repo{Name: "serverless"})
	if !reflect.DeepEqual(got, []string{"serverless"}) {
		t.Fatalf("keywords = %v", got)
	}
}

func TestExtractKeywordsEmptyRepo(t *testing.T) {
	if got := ExtractKeywords(models.Repo{}); len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"saas", "crypto", "saas", "defi", "crypto"})
	want := []string{"saas", "crypto", "defi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}
}

func TestSeedKeywords(t *testing.T) {
	seeds := SeedKeywords()
	if len(seeds) != 22 {
		t.Fatalf("got %d seed keywords, want 22", len(seeds))
	}
	if seeds[0] != "ai-agents" || seeds[len(seeds)-1] != "coaching" {
		t.Fatalf("unexpected seed ordering: first=%q last=%q", seeds[0], seeds[len(seeds)-1])
	}
}

package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchRepos(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":2,"items":[
			{"name":"ai-trading-bot","description":"Automated trading"},
			{"name":"saas-starter","description":null}
		]}`))
	}))
	defer srv.Close()

	src := New("tok-123", srv.URL)
	repos, err := src.SearchRepos(context.Background(), "ai automation")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotAuth != "token tok-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotQuery != "ai automation" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(repos))
	}
	if repos[0].Name != "ai-trading-bot" || repos[0].Description != "Automated trading" {
		t.Fatalf("unexpected repo %+v", repos[0])
	}
	if repos[1].Description != "" {
		t.Fatalf("null description should decode empty, got %q", repos[1].Description)
	}
}

func TestSearchReposNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("unexpected Authorization header")
		}
		_, _ = w.Write([]byte(`{"total_count":0,"items":[]}`))
	}))
	defer srv.Close()

	src := New("", srv.URL)
	repos, err := src.SearchRepos(context.Background(), "saas")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(repos) != 0 {
		t.Fatalf("expected no repos, got %d", len(repos))
	}
}

func TestSearchReposUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	src := New("tok", srv.URL)
	if _, err := src.SearchRepos(context.Background(), "ai"); err == nil {
		t.Fatalf("expected error on 403")
	}
}

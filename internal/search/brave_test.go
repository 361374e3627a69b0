package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBraveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("q") != "go generics" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"Generics","url":"https://go.dev/doc/tutorial/generics","description":"Go 1.18 added <strong>generics</strong>."},
			{"title":"Only a title","url":"https://example.com","description":""}
		]}}`))
	}))
	defer srv.Close()

	b := NewBraveWithClient("secret", srv.URL, srv.Client())
	text, err := b.Search(context.Background(), "go generics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Go 1.18 added generics. Only a title"; text != want {
		t.Fatalf("got %q, want %q", text, want)
	}

	bad := NewBraveWithClient("wrong", srv.URL, srv.Client())
	if _, err := bad.Search(context.Background(), "go generics"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestBraveRequiresKey(t *testing.T) {
	if _, err := NewBrave("", 0).Search(context.Background(), "q"); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]Result{{Snippet: " a "}, {Title: "b"}, {}, {Title: "x", Snippet: "c"}})
	if got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

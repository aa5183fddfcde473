package advisory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestByCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/advisory" || r.URL.Query().Get("country") != "fr" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"level":"Exercise a high degree of caution","summary":"Terrorism threat",
			"details":["Avoid protests"],"last_updated":"2025-01-02","advice":["Monitor media","Be alert"]}`))
	}))
	defer srv.Close()

	adv, err := NewClient().WithBaseURL(srv.URL).ByCode(context.Background(), "FR")
	if err != nil {
		t.Fatalf("ByCode: %v", err)
	}
	if adv.Level == nil || *adv.Level != "Exercise a high degree of caution" {
		t.Fatalf("unexpected level %v", adv.Level)
	}
	if adv.CountryCode != "FR" || len(adv.Details.Items) != 1 || len(adv.Advice) != 2 {
		t.Fatalf("unexpected advisory %+v", adv)
	}
}

func TestByCode_MissingLevelStaysNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary":"","details":"none"}`))
	}))
	defer srv.Close()

	adv, err := NewClient().WithBaseURL(srv.URL).ByCode(context.Background(), "jp")
	if err != nil {
		t.Fatalf("ByCode: %v", err)
	}
	if adv.Level != nil {
		t.Fatalf("expected nil level, got %q", *adv.Level)
	}
	if adv.Details.Text != "none" {
		t.Fatalf("unexpected details %+v", adv.Details)
	}
}

func TestByCode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient().WithBaseURL(srv.URL).ByCode(context.Background(), "FR"); err == nil {
		t.Fatal("expected error on 502")
	}
}

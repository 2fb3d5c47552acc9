package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vodub/internal/services/translate"
)

func newFakeEndpoint(t *testing.T, segments []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		payload, _ := json.Marshal(map[string]any{"segments": segments})
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": string(payload)}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestTranslatePreservesCountAndOrder(t *testing.T) {
	server := newFakeEndpoint(t, []string{"Hola.", "Adiós."})
	defer server.Close()

	client := translate.NewClient(translate.Config{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
	})

	got, err := client.Translate(context.Background(), []string{"Hello.", "Goodbye."}, "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(got) != 2 || got[0] != "Hola." || got[1] != "Adiós." {
		t.Fatalf("unexpected translations: %v", got)
	}
}

func TestTranslateRejectsCountMismatch(t *testing.T) {
	server := newFakeEndpoint(t, []string{"solo uno"})
	defer server.Close()

	client := translate.NewClient(translate.Config{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
	})

	_, err := client.Translate(context.Background(), []string{"one", "two", "three"}, "en", "es")
	if err == nil || !strings.Contains(err.Error(), "expected 3 segments") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}

func TestTranslateRequiresAPIKey(t *testing.T) {
	client := translate.NewClient(translate.Config{})
	if client.Configured() {
		t.Fatal("expected unconfigured client")
	}
	if _, err := client.Translate(context.Background(), []string{"hi"}, "en", "es"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestTranslateRequiresTexts(t *testing.T) {
	client := translate.NewClient(translate.Config{APIKey: "k"})
	if _, err := client.Translate(context.Background(), nil, "en", "es"); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestTranslateSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := translate.NewClient(translate.Config{APIKey: "bad", BaseURL: server.URL + "/v1", Model: "m"})
	if _, err := client.Translate(context.Background(), []string{"hi"}, "en", "es"); err == nil {
		t.Fatal("expected error from server failure")
	}
}

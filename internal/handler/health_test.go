package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHandleHealthz(t *testing.T) {
	srv, client, _ := newTestApp(t)

	resp := get(t, client, srv.URL+"/healthz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %s", body["status"])
	}
}

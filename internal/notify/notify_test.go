package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:abc/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "123:abc", "-100200300")

	err := n.Send(context.Background(), "detected rugged: SCAM")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["chat_id"] != "-100200300" {
		t.Errorf("expected chat_id -100200300, got %q", got["chat_id"])
	}
	if got["text"] != "detected rugged: SCAM" {
		t.Errorf("unexpected text %q", got["text"])
	}
}

func TestTelegramNotifier_SendHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "123:abc", "-1")

	if err := n.Send(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestNopNotifier(t *testing.T) {
	if err := (NopNotifier{}).Send(context.Background(), "dropped"); err != nil {
		t.Fatalf("NopNotifier.Send: %v", err)
	}
}

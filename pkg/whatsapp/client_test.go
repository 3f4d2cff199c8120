package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("test-token", "12345", nopLogger{})
	c.baseURL = srv.URL
	return c, srv
}

func TestSendText(t *testing.T) {
	var got textPayload
	var auth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	if err := c.SendText(context.Background(), "+5511999998888", "Ola!"); err != nil {
		t.Fatal(err)
	}

	if auth != "Bearer test-token" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.MessagingProduct != "whatsapp" || got.Type != "text" {
		t.Errorf("payload = %+v", got)
	}
	if got.To != "5511999998888" {
		t.Errorf("To = %q, want normalized number without plus", got.To)
	}
	if got.Text.Body != "Ola!" {
		t.Errorf("Body = %q", got.Text.Body)
	}
}

func TestSendTextErrorStatus(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	})
	defer srv.Close()

	if err := c.SendText(context.Background(), "5511999998888", "Ola!"); err == nil {
		t.Error("expected error on 401 response")
	}
}

func TestMarkAsReadSwallowsFailures(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})
	defer srv.Close()

	if err := c.MarkAsRead(context.Background(), "wamid.abc"); err != nil {
		t.Errorf("MarkAsRead should not propagate failures, got %v", err)
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct{ in, want string }{
		{"+5511999998888", "5511999998888"},
		{"5511999998888", "5511999998888"},
		{"  +55 ", "55"},
	}
	for _, tt := range tests {
		if got := normalizeNumber(tt.in); got != tt.want {
			t.Errorf("normalizeNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

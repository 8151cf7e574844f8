package logx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestAnonymizeIP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"192.168.10.42:5555", "192.168.10.0"},
		{"8.8.4.4", "8.8.4.0"},
		{"127.0.0.1:80", "127.0.0.1"},
		{"[2001:db8:1:2:3:4:5:6]:443", "2001:db8:1:2::"},
		{"garbage", "unknown_ip"},
	}
	for _, c := range cases {
		if got := anonymizeIP(c.in); got != c.want {
			t.Errorf("anonymizeIP(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRequestLoggerWritesCompletionLine(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, zerolog.DebugLevel)
	t.Cleanup(func() { initLogger(&bytes.Buffer{}, zerolog.Disabled) })

	h := middleware.RequestID(RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log output is not a single JSON line: %v (%q)", err, buf.String())
	}
	if line["level"] != "warn" {
		t.Errorf("level = %v, want warn for 4xx", line["level"])
	}
	if line["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want %d", line["status"], http.StatusTeapot)
	}
	if line["request_id"] == "" || line["request_id"] == nil {
		t.Errorf("request_id missing from %v", line)
	}
}

func TestCheckFieldsDropsOddFields(t *testing.T) {
	initLogger(&bytes.Buffer{}, zerolog.Disabled)
	if got := checkFields("Info", []any{"only-key"}); got != nil {
		t.Errorf("checkFields(odd) = %v, want nil", got)
	}
	if got := checkFields("Info", []any{"k", 1}); len(got) != 2 {
		t.Errorf("checkFields(even) = %v, want 2 entries", got)
	}
}

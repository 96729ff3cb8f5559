package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLoggerRedactsSensitiveParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(requestLogger(log))
	r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

	form := url.Values{
		"email":        {"john.doe@example.com"},
		"password":     {"hunter2"},
		"api_token":    {"abc123"},
		"ClientSecret": {"s3cret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	line := buf.String()
	for _, secret := range []string{"hunter2", "abc123", "s3cret"} {
		if strings.Contains(line, secret) {
			t.Fatalf("secret %q leaked into log line:\n%s", secret, line)
		}
	}
	if !strings.Contains(line, "[FILTERED]") {
		t.Fatalf("expected redaction marker in log line:\n%s", line)
	}
	if !strings.Contains(line, "john.doe@example.com") {
		t.Fatalf("expected non-sensitive param to be logged:\n%s", line)
	}
	if !strings.Contains(line, `"request_id"`) || !strings.Contains(line, `"status":200`) {
		t.Fatalf("missing request metadata:\n%s", line)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID response header")
	}
}

func TestRequestLoggerSkipsFormForGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(requestLogger(log))
	r.GET("/list", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/list?password=querysecret", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	line := buf.String()
	if strings.Contains(line, "querysecret") {
		t.Fatalf("query param leaked into log line:\n%s", line)
	}
	if strings.Contains(line, `"form"`) {
		t.Fatalf("GET request should not log form params:\n%s", line)
	}
}

package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger logs one line per request: method, path, status, duration
// and a correlation id. For non-GET form submissions the parameters are
// included with password-like fields redacted.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		}
		if c.Request.Method != http.MethodGet {
			if params := redactedFormParams(c.Request); len(params) > 0 {
				attrs = append(attrs, "form", params)
			}
		}
		log.Info("request processed", attrs...)
	}
}

func redactedFormParams(r *http.Request) map[string]string {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(ct, "multipart/form-data") {
		return nil
	}
	// Idempotent if the handler already parsed the body.
	_ = r.ParseForm()
	if len(r.PostForm) == 0 {
		return nil
	}
	params := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if isSensitiveParam(key) {
			params[key] = "[FILTERED]"
			continue
		}
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func isSensitiveParam(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "secret") || strings.Contains(k, "token")
}

package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body  *bytes.Buffer
	limit int
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < r.limit {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 每个请求结束后记一条审计日志，文件上传只记录长度，4xx 记 Warn，5xx 记 Error
func AuditMiddleware(limit int) gin.HandlerFunc {
	if limit <= 0 {
		limit = 1000
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		reqBody := ""
		if c.Request.Body != nil && !strings.HasPrefix(c.ContentType(), "multipart/") {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			reqBody = preview(string(raw), limit)
		}

		query, err := url.QueryUnescape(c.Request.URL.RawQuery)
		if err != nil {
			query = c.Request.URL.RawQuery
		}

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer, limit: limit}
		c.Writer = w
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := log.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = log.LevelError
		case status >= http.StatusBadRequest:
			level = log.LevelWarn
		}
		log.Log(c.Request.Context(), level, "Audit",
			log.String("method", c.Request.Method),
			log.String("route", c.FullPath()),
			log.String("path", c.Request.URL.Path),
			log.String("query", query),
			log.Int64("content_length", c.Request.ContentLength),
			log.String("req_body", reqBody),
			log.Int("status", status),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", preview(w.body.String(), limit)),
		)
	}
}

func preview(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...[truncated]"
}

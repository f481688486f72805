package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLog struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
	ClientIP    string `json:"client_ip"`
	Error       string `json:"error,omitempty"`
}

// SetupGin 访问日志与 panic 恢复，5xx 记为 ERROR
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/healthz"},
		Formatter: formatAccess,
	}))
	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	entry := accessLog{
		Time:        p.TimeStamp.Format(time.RFC3339),
		Level:       "INFO",
		Msg:         "GIN_ACCESS",
		LogToken:    logToken,
		TargetIndex: targetIndex,
		Method:      p.Method,
		Path:        p.Path,
		Status:      p.StatusCode,
		Latency:     p.Latency.String(),
		ClientIP:    p.ClientIP,
		Error:       p.ErrorMessage,
	}
	if id, ok := p.Keys[TraceIDKey].(string); ok {
		entry.TraceID = id
	}
	if entry.TraceID == "" && p.Request != nil {
		entry.TraceID = TraceID(p.Request.Context())
	}
	if p.StatusCode >= 500 {
		entry.Level = "ERROR"
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}

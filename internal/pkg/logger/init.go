package logger

import (
	"Showcase/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

var LogWriter io.Writer = os.Stdout

// Thresholds 慢操作阈值，InitLogger 时由配置覆盖
type Thresholds struct {
	SQL     time.Duration
	Redis   time.Duration
	Mongo   time.Duration
	Elastic time.Duration
	Preview int
}

var slow = Thresholds{
	SQL:     200 * time.Millisecond,
	Redis:   100 * time.Millisecond,
	Mongo:   200 * time.Millisecond,
	Elastic: 500 * time.Millisecond,
	Preview: 1000,
}

var (
	logToken    string
	targetIndex = "logstash-showcase"
)

// InitLogger 本地输出 JSON，能连上 Logstash 时再把带 trace_id 的日志同步上报
func InitLogger(cfg *config.Config) io.Closer {
	applyThresholds(cfg.Log)
	logToken = cfg.Logstash.Token
	if cfg.Logstash.Index != "" {
		targetIndex = cfg.Logstash.Index
	}

	opts := &log.HandlerOptions{Level: parseLevel(cfg.Log.Level)}
	hStdout := log.NewJSONHandler(os.Stdout, opts)
	var finalHandler log.Handler = hStdout

	var conn net.Conn
	if cfg.Logstash.Address != "" {
		var err error
		conn, err = net.DialTimeout("tcp", cfg.Logstash.Address, 3*time.Second)
		if err != nil {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}
	if conn != nil {
		hRemote := log.NewJSONHandler(conn, opts).
			WithAttrs([]log.Attr{
				log.String("target_index", targetIndex),
				log.String("log_token", logToken),
			})
		finalHandler = &TeeHandler{
			handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
		}
		LogWriter = io.MultiWriter(os.Stdout, conn)
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
	if conn == nil {
		return nopCloser{}
	}
	return conn
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func applyThresholds(c config.LogConfig) {
	if c.SlowSQL > 0 {
		slow.SQL = c.SlowSQL
	}
	if c.SlowRedis > 0 {
		slow.Redis = c.SlowRedis
	}
	if c.SlowMongo > 0 {
		slow.Mongo = c.SlowMongo
	}
	if c.SlowElastic > 0 {
		slow.Elastic = c.SlowElastic
	}
	if c.BodyPreviewLimit > 0 {
		slow.Preview = c.BodyPreviewLimit
	}
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// truncate 截断过长的请求体或命令
func truncate(s string) string {
	if len(s) <= slow.Preview {
		return s
	}
	return s[:slow.Preview] + "...[truncated]"
}

package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

// ESTransport 记录 ES 请求耗时，慢请求和非 2xx 响应带上请求/响应体
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody := drain(&req.Body)

	start := time.Now()
	resp, err := t.transport().RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{"method", req.Method, "path", req.URL.Path, "latency", elapsed}
	ctx := req.Context()
	if err != nil {
		log.ErrorContext(ctx, "ES_QUERY_ERROR", append(fields, "req_body", truncate(reqBody), "err", err)...)
		return nil, err
	}

	fields = append(fields, "status", resp.StatusCode)
	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		resBody := drain(&resp.Body)
		log.WarnContext(ctx, "ES_QUERY_FAILED", append(fields, "req_body", truncate(reqBody), "res_body", truncate(resBody))...)
	case elapsed > slow.Elastic:
		log.WarnContext(ctx, "ES_QUERY_SLOW", append(fields, "req_body", truncate(reqBody))...)
	default:
		log.DebugContext(ctx, "ES_QUERY", fields...)
	}
	return resp, nil
}

func (t *ESTransport) transport() http.RoundTripper {
	if t.Transport == nil {
		return http.DefaultTransport
	}
	return t.Transport
}

// drain 读出 body 并换成可重复读取的副本
func drain(body *io.ReadCloser) string {
	if *body == nil || *body == http.NoBody {
		return ""
	}
	b, _ := io.ReadAll(*body)
	_ = (*body).Close()
	*body = io.NopCloser(bytes.NewReader(b))
	return string(b)
}

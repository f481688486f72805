package model

// TranscodeTask 投递给转码 worker 的任务
type TranscodeTask struct {
	VideoID        uint64 `json:"video_id"`
	PublicID       string `json:"public_id"`
	SourceURL      string `json:"source_url"`
	MaxAttempts    int    `json:"max_attempts"`
	TimeoutSeconds int64  `json:"timeout_seconds"`
}

// ProcessingOutcome worker 回报的结果
type ProcessingOutcome string

const (
	OutcomeSuccess ProcessingOutcome = "success"
	OutcomeFailure ProcessingOutcome = "failure"
)

// MediaMeta 转码产物
type MediaMeta struct {
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     int    `json:"duration"`
	Format       string `json:"format"`
	Resolution   string `json:"resolution"`
}

// ProcessingResult VideoID 与 PublicID 至少一个非空
type ProcessingResult struct {
	VideoID  uint64            `json:"video_id"`
	PublicID string            `json:"public_id"`
	Outcome  ProcessingOutcome `json:"outcome"`
	Media    *MediaMeta        `json:"media,omitempty"`
	Error    string            `json:"error,omitempty"`
}

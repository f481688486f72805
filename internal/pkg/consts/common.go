package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	TraceIDHeader     = "X-Trace-ID"
	WorkerTokenHeader = "X-Worker-Token"
)

// gin.Context 中的鉴权信息
const (
	UserIDKey = "user_id"
	RolesKey  = "roles"
)

const (
	ProcessingTimeoutReason = "processing timeout"
	MissingVideoURLReason   = "processing finished without video url"
)

const (
	CommentMaxRunes   = 500
	InlineReplyLimit  = 3
	ThumbnailWidth    = 480
	CounterSyncBatch  = 200
	StaleSweepBatch   = 100
	DefaultReplyLimit = 20
	MaxReplyLimit     = 50
	MaxUploadBytes    = 200 << 20
	MaxMediaURLLen    = 512
	MaxMediaAttrLen   = 32
)

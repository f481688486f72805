package consts

const (
	VideoDirtyKey    = "video:dirty"
	TrendingCacheKey = "video:trending:"
)

const (
	StaleSweepLock  = "lock:video:stale"
	CounterSyncLock = "lock:video:counter:sync"
)

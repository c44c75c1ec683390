package worker

// Log messages
const (
	LogMsgWorkerJobFailed      = "Worker job failed"
	LogMsgCatalogRefreshStart  = "Refreshing game data catalog"
	LogMsgCatalogRefreshDone   = "Game data catalog refreshed"
	LogMsgCatalogRefreshFailed = "Game data catalog refresh failed"
	LogMsgCatalogWarmFailed    = "Servant cache warm failed"
)

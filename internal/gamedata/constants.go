package gamedata

// Config and schema paths, relative to the working directory.
const (
	ServantsConfigPath = "configs/gamedata/servants.json"
	ItemsConfigPath    = "configs/gamedata/items.json"

	ServantsSchemaPath = "configs/schemas/servants.schema.json"
	ItemsSchemaPath    = "configs/schemas/items.schema.json"
)

// Error message constants for the loader
const (
	ErrMsgReadConfigFileFailed  = "failed to read config file: %w"
	ErrMsgParseConfigFileFailed = "failed to parse config file: %w"
)

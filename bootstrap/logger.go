package bootstrap

import (
	"lipapay/pkg/config"
	"lipapay/pkg/logger"
)

// SetupLogger initializes the logger
// Settings are read from the log section of the config:
// - filename: log file path
// - max_size: maximum size of a single log file in MB
// - max_backup: maximum number of rotated files to keep
// - max_age: maximum number of days to keep a file
// - compress: whether to compress rotated files
// - type: daily (one file per day) or single (one file)
// - level: debug, info, warn, error, fatal
func SetupLogger() {
	logger.InitLogger(
		config.GetString("log.filename"),
		config.GetInt("log.max_size"),
		config.GetInt("log.max_backup"),
		config.GetInt("log.max_age"),
		config.GetBool("log.compress"),
		config.GetString("log.type"),
		config.GetString("log.level"),
	)
}

package config

import "lipapay/pkg/config"

func init() {
	config.Add("log", func() map[string]interface{} {
		return map[string]interface{}{

			// log level, debug < info < warn < error
			"level": config.Env("LOG_LEVEL", "debug"),

			// log type, single for one file, daily for one file per day
			"type": config.Env("LOG_TYPE", "single"),

			// rolling log settings
			"filename":   config.Env("LOG_NAME", "storage/logs/logs.log"),
			"max_size":   config.Env("LOG_MAX_SIZE", 64),
			"max_backup": config.Env("LOG_MAX_BACKUP", 5),
			"max_age":    config.Env("LOG_MAX_AGE", 30),
			"compress":   config.Env("LOG_COMPRESS", false),
		}
	})
}

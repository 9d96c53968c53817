package bootstrap

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/receiptvault/receiptvault/internal/conf"
	log "github.com/sirupsen/logrus"
)

// InitLog configures the global logrus logger from cfg. Unknown levels fall
// back to info.
func InitLog(cfg *conf.Config) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
		log.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	}
	log.SetOutput(out)
}

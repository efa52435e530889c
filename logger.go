package main

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initLogger installs the process-wide structured logger, mirroring stdout
// into a rotated file when configured.
func initLogger(cfg LoggerConfig) {
	opts := &slog.HandlerOptions{
		Level: logLevelFromString(cfg.LogLevel),
	}

	var w io.Writer = os.Stdout
	if cfg.LogToFile && cfg.Filename != "" {
		logTarget := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxAge:     cfg.MaxAge,  // days
			MaxBackups: cfg.MaxBackups,
		}
		w = io.MultiWriter(os.Stdout, logTarget)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}

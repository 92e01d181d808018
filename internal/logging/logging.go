// Package logging points the standard logger at stderr and, optionally, a
// rotating file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/KirkDiggler/dnd-dpr/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the standard logger. Close the result on shutdown.
func Setup(cfg config.LogConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	log.Printf("Logging to %s", cfg.File)
	return file
}

package logging_test

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-dpr/internal/config"
	"github.com/KirkDiggler/dnd-dpr/internal/logging"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dpr.log")

	closer := logging.Setup(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Printf("series computed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "series computed")
}

func TestSetup_StderrOnly(t *testing.T) {
	closer := logging.Setup(config.LogConfig{})
	assert.NoError(t, closer.Close())
}

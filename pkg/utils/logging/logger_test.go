package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileName(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "prod_2025-03-03_09-15-00.log"), LogFileName("logs", "prod", now))
	assert.Equal(t, filepath.Join("logs", "default_2025-03-03_09-15-00.log"), LogFileName("logs", "", now))
}

func TestInitLogger_WritesDebugToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	logger, path, err := InitLogger("test", Options{Dir: dir})
	require.NoError(t, err)

	logger.Debug("allocated date")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "allocated date", entry["msg"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "timestamp")
}

package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logconfig "github.com/weisyn/nftmarket/internal/config/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nftmarket.log")
	logger, err := New(logconfig.New(&logconfig.LogOptions{Level: "debug", FilePath: path}))
	require.NoError(t, err)

	logger.With("module", "market", "token", 7).Infof("minted %s", "ok")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "minted ok", entry["message"])
	assert.Equal(t, "market", entry["module"])
	assert.Equal(t, float64(7), entry["token"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NoOutputsIsNop(t *testing.T) {
	logger, err := New(logconfig.New(nil))
	require.NoError(t, err)
	assert.NotNil(t, logger.GetZapLogger())
	logger.Info("discarded")
}

func TestWithModule(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := FromZap(zap.New(core))

	WithModule(base, "registry").Warn("slow call")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "slow call", entry.Message)
	assert.Equal(t, "registry", entry.ContextMap()["module"])
}

func TestToZapFields_OddArgs(t *testing.T) {
	fields := toZapFields("a", 1, "dangling")
	require.Len(t, fields, 1)
	assert.Equal(t, "a", fields[0].Key)
}

func TestGlobalLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	old := GetLogger()
	defer SetLogger(old)

	SetLogger(FromZap(zap.New(core)))
	With("k", "v").Info("hello")
	SetLogger(nil)

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
}

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_Defaults(t *testing.T) {
	c := New(nil)
	assert.Equal(t, zapcore.InfoLevel, c.GetZapLevel())
	assert.False(t, c.IsConsoleEnabled())
	assert.Empty(t, c.GetFilePath())
	assert.Equal(t, defaultMaxSize, c.GetMaxSize())
}

func TestNew_UserOverrides(t *testing.T) {
	c := New(&LogOptions{Level: "debug", FilePath: "/tmp/x.log", ToConsole: true, MaxAge: 3})
	assert.Equal(t, zapcore.DebugLevel, c.GetZapLevel())
	assert.True(t, c.IsConsoleEnabled())
	assert.Equal(t, "/tmp/x.log", c.GetFilePath())
	assert.Equal(t, 3, c.GetMaxAge())
	assert.Equal(t, defaultMaxBackups, c.GetMaxBackups())
}

func TestGetZapLevel_Unknown(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, New(&LogOptions{Level: "verbose"}).GetZapLevel())
}

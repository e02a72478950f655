package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	defaultLogLevel = "info"

	// 客户端默认只写文件，控制台留给命令输出
	defaultToConsole = false

	defaultMaxSize    = 20 // MB
	defaultMaxBackups = 5
	defaultMaxAge     = 14 // days
	defaultCompress   = true

	defaultEnableCaller     = true
	defaultEnableStacktrace = false
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

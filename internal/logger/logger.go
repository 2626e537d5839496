package logger

import (
	"os"
	"strings"

	"github.com/samvad-hq/netclient/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Logger is the structured logging surface handed to library packages.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// ZapLogger forwards to the package-level logger.
type ZapLogger struct{}

func (ZapLogger) InfoObj(msg, key string, obj interface{})  { InfoObj(msg, key, obj) }
func (ZapLogger) DebugObj(msg, key string, obj interface{}) { DebugObj(msg, key, obj) }
func (ZapLogger) WarnObj(msg, key string, obj interface{})  { WarnObj(msg, key, obj) }
func (ZapLogger) ErrorObj(msg, key string, obj interface{}) { ErrorObj(msg, key, obj) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init initializes a zap SugaredLogger using settings from config.
// Logs go to stderr so command output on stdout stays clean.
func Init(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if cfg != nil {
		level = ParseLevel(cfg.LogLevel)
	}
	return initWith(zapcore.AddSync(zapcore.Lock(os.Stderr)), level), nil
}

func initWith(ws zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		level,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	sugar := logger.Sugar()
	S = sugar
	return sugar
}

// Close flushes the package logger; safe before Init.
func Close() error {
	if S != nil {
		return S.Sync()
	}
	return nil
}

// InfoObj, DebugObj, WarnObj and ErrorObj log obj as the single structured
// field key at their level.
func InfoObj(msg, key string, obj interface{}) { logObj(zapcore.InfoLevel, msg, key, obj) }

func DebugObj(msg, key string, obj interface{}) { logObj(zapcore.DebugLevel, msg, key, obj) }

func WarnObj(msg, key string, obj interface{}) { logObj(zapcore.WarnLevel, msg, key, obj) }

func ErrorObj(msg, key string, obj interface{}) { logObj(zapcore.ErrorLevel, msg, key, obj) }

// logObj is a no-op until Init has run. The caller skip points log lines at
// the *Obj call site rather than this file.
func logObj(level zapcore.Level, msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	if ce := S.Desugar().WithOptions(zap.AddCallerSkip(2)).Check(level, msg); ce != nil {
		ce.Write(zap.Any(key, obj))
	}
}

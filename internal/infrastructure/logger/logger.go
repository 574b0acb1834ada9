package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance
var Log *zap.Logger

// Init builds the global logger. Production writes JSON; development writes
// coloured console lines. An unknown level falls back to info.
func Init(env, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	development := env == "development"
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      development,
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if development {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return err
	}

	Log = built
	zap.ReplaceGlobals(Log)
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Nop installs a no-op logger. Tests and CLI commands use it to keep output clean.
func Nop() {
	Log = zap.NewNop()
}

// Named returns a child of the global logger for a long-running component.
// Before Init it returns a no-op logger.
func Named(name string, fields ...zap.Field) *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log.Named(name).With(fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// write reports the caller of the exported helper, two frames up.
func write(lvl zapcore.Level, msg string, fields []zap.Field) {
	if Log == nil {
		return
	}
	if ce := Log.WithOptions(zap.AddCallerSkip(2)).Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

func Info(msg string, fields ...zap.Field)  { write(zapcore.InfoLevel, msg, fields) }
func Error(msg string, fields ...zap.Field) { write(zapcore.ErrorLevel, msg, fields) }
func Warn(msg string, fields ...zap.Field)  { write(zapcore.WarnLevel, msg, fields) }
func Debug(msg string, fields ...zap.Field) { write(zapcore.DebugLevel, msg, fields) }

// Fatal logs and exits the process. Without a logger it does nothing.
func Fatal(msg string, fields ...zap.Field) { write(zapcore.FatalLevel, msg, fields) }

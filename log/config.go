package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger encoding and minimum level.
type Config struct {
	Name  string
	IsDev bool
	Level string // debug, info, warn, error; empty uses the encoding default
}

// NewLogger creates a named logger: colored console output when isDev,
// JSON on stderr otherwise.
func NewLogger(name string, isDev bool) *zap.Logger {
	l, err := New(Config{Name: name, IsDev: isDev})
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// New builds a logger from c. It fails only on an unknown level.
func New(c Config) (*zap.Logger, error) {
	cfg := jsonConfig()
	if c.IsDev {
		cfg = consoleConfig()
	}

	if c.Level != "" {
		lvl, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(c.Name), nil
}

func jsonConfig() zap.Config {
	hostname, _ := os.Hostname()

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "lvl",
			NameKey:        "service",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "trace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		InitialFields: map[string]any{"host": hostname},
	}
}

func consoleConfig() zap.Config {
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:      true,
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			NameKey:    "service",
			EncodeName: encodeConsoleName,

			MessageKey: "message",

			TimeKey:    "time",
			EncodeTime: encodeConsoleTime,

			LevelKey:    "level",
			EncodeLevel: encodeConsoleLevel,

			CallerKey:      "caller",
			EncodeCaller:   encodeConsoleCaller,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
}

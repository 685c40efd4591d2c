package log

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// consoleTimeLayout keeps milliseconds so command durations line up with
// the timestamps of the entries around them.
const consoleTimeLayout = "15:04:05.000"

var levelStyles = map[zapcore.Level]func(any) string{
	zapcore.DebugLevel: ColorGreen,
	zapcore.InfoLevel:  func(v any) string { return ColorWhite(Bold(v)) },
	zapcore.WarnLevel:  func(v any) string { return ColorGray(Bold(v)) },
}

func styleLevel(level zapcore.Level) string {
	style, ok := levelStyles[level]
	if !ok {
		style = func(v any) string { return ColorRed(Bold(v)) }
	}
	return style(level.CapitalString())
}

// painted adapts a string renderer into the array encoder shape zap expects
// for names, levels and callers.
func painted[V any](render func(V) string) func(V, zapcore.PrimitiveArrayEncoder) {
	return func(v V, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(render(v))
	}
}

var (
	encodeConsoleTime = painted(func(t time.Time) string {
		return ColorGray(t.Format(consoleTimeLayout))
	})
	encodeConsoleLevel  = painted(styleLevel)
	encodeConsoleCaller = painted(func(c zapcore.EntryCaller) string {
		return ColorGray(c.TrimmedPath())
	})
	encodeConsoleName = painted(func(name string) string {
		return Bold(name)
	})
)

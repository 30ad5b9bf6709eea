package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the global logger. Production emits JSON, everything
// else gets human-readable text at debug level.
func Init(environment string) {
	var handler slog.Handler

	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass a bare error or value as the last
// argument without breaking slog's key/value pairing.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}

	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)

	last := args[len(args)-1]
	if err, ok := last.(error); ok {
		return append(out, "error", err)
	}
	return append(out, "detail", last)
}

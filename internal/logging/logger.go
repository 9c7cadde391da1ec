package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the JSON stdout logger as the slog default. Development
// builds also emit debug records.
func Setup(env string) *slog.JSONHandler {
	h := NewJSONHandler(os.Stdout, env)
	slog.SetDefault(slog.New(h))
	return h
}

func NewJSONHandler(w io.Writer, env string) *slog.JSONHandler {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

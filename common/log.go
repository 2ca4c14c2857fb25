package common

import (
	"io"
	"log/slog"
	"os"
)

var (
	logLevel            = new(slog.LevelVar)
	logOutput io.Writer = os.Stderr
)

// SetDebug switches every component logger between debug and info.
func SetDebug(on bool) {
	if on {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelInfo)
}

// SetLogOutput redirects loggers created afterwards.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logOutput = w
}

// Logger returns a text logger tagged with component.
func Logger(component string) *slog.Logger {
	h := slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: logLevel})
	return slog.New(h).With("component", component)
}

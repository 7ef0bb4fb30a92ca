// Package logging configures the process-wide slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter is a slog.Handler that routes INFO/WARN to one handler and ERROR+ to another.
type levelRouter struct {
	level slog.Leveler
	out   slog.Handler
	err   slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.err.Handle(ctx, r)
	}
	return lr.out.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level: lr.level,
		out:   lr.out.WithAttrs(attrs),
		err:   lr.err.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level: lr.level,
		out:   lr.out.WithGroup(name),
		err:   lr.err.WithGroup(name),
	}
}

// Options controls Setup. Zero Stdout/Stderr mean os.Stdout/os.Stderr.
type Options struct {
	Level  slog.Level
	Path   string // also write every record to this file when set
	Stdout io.Writer
	Stderr io.Writer
}

// NewHandler returns a handler sending records below ERROR to out and the rest to errw.
func NewHandler(out, errw io.Writer, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	return &levelRouter{
		level: level,
		out:   slog.NewTextHandler(out, opts),
		err:   slog.NewTextHandler(errw, opts),
	}
}

// Setup installs the default logger. The returned cleanup closes the log
// file, if one was opened, and is never nil.
func Setup(o Options) (func(), error) {
	cleanup := func() {}

	stdoutW := o.Stdout
	if stdoutW == nil {
		stdoutW = os.Stdout
	}
	stderrW := o.Stderr
	if stderrW == nil {
		stderrW = os.Stderr
	}

	if o.Path != "" {
		f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(stdoutW, f)
		stderrW = io.MultiWriter(stderrW, f)
	}

	slog.SetDefault(slog.New(NewHandler(stdoutW, stderrW, o.Level)))
	return cleanup, nil
}

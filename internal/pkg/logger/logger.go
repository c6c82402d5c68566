// Package logger builds logrus loggers and carries request-scoped entries
// through a context.Context.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats accepted by New
const (
	FormatText = "text"
	FormatJSON = "json"
)

type ctxKey struct{}

// Options configures a logger
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a logrus logger. Unknown levels fall back to info.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if opts.Format == FormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithEntry attaches entry to ctx
func WithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the entry attached to ctx, or one backed by the
// standard logrus logger when none is set.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok && entry != nil {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithFields returns a child context whose entry carries the extra fields
func WithFields(ctx context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	entry := FromContext(ctx).WithFields(fields)
	return WithEntry(ctx, entry), entry
}

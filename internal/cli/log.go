package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Found 12 packages (231ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports outbound HTTP requests at debug level through the logger
// carried by the request context.
type logHooks struct{}

func (logHooks) OnRequest(ctx context.Context, id, method, host, path string) {
	loggerFromContext(ctx).Debug("request", "id", id, "method", method, "url", host+path)
}

func (logHooks) OnResponse(ctx context.Context, id, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Debug("response", "id", id, "status", status, "took", d.Round(time.Millisecond))
}

func (logHooks) OnError(ctx context.Context, id, method, host, path string, err error) {
	loggerFromContext(ctx).Debug("request failed", "id", id, "url", host+path, "err", err)
}

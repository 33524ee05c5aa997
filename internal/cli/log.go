package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. It writes to w (stderr in main) with a
// short timestamp and the "kvk" prefix, dropping messages below level.
// The same logger is handed to the registry client, so --verbose also shows
// its cache hits and fetches.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          appName,
		Level:           level,
	})
}

// progress times a single registry query.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// found reports the number of companies a search returned.
func (p *progress) found(n int) {
	noun := "companies"
	if n == 1 {
		noun = "company"
	}
	p.done(fmt.Sprintf("Found %d %s", n, noun))
}

// fetched reports a retrieved base profile.
func (p *progress) fetched(kvkNumber string) {
	p.done("Fetched profile " + kvkNumber)
}

// done logs msg at info level with the elapsed time, e.g.
// "Found 3 companies (412ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger the root command attached, or
// log.Default() when ctx carries none (commands run outside Execute).
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

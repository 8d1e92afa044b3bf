package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Lines carry a millisecond timestamp;
// chart warnings reuse it through sparkline.WithLogger.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// stopwatch measures one command step.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// elapsed is rounded to microseconds; renders routinely finish in well
// under a millisecond.
func (s stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Microsecond)
}

// stop logs msg at info level with a took= field ahead of keyvals.
func (s stopwatch) stop(msg string, keyvals ...any) {
	s.logger.Info(msg, append([]any{"took", s.elapsed()}, keyvals...)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default for commands run outside
// RootCommand, such as in tests.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, _ := ctx.Value(loggerKey{}).(*log.Logger); l != nil {
		return l
	}
	return log.Default()
}

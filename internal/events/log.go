package events

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/gameshelf/internal/logfields"
)

// Log renders events as structured slog records.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log reporter; a nil logger means slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Report(e Event) {
	attrs := []slog.Attr{logfields.RunID(e.RunID)}
	if e.Stage != "" {
		attrs = append(attrs, logfields.Stage(e.Stage))
	}
	if e.Game != "" {
		attrs = append(attrs, logfields.Game(e.Game))
	}
	if e.Category != "" {
		attrs = append(attrs, logfields.Category(e.Category))
	}
	if e.Path != "" {
		attrs = append(attrs, logfields.Path(e.Path))
	}
	if e.Reason != "" {
		attrs = append(attrs, logfields.Reason(e.Reason))
	}

	level := slog.LevelDebug
	msg := string(e.Kind)
	switch e.Kind {
	case RebuildStarted:
		msg = "Starting rebuild"
	case ScanComplete:
		level, msg = slog.LevelInfo, "Content scan complete"
		attrs = append(attrs, logfields.Count(e.Count))
	case GameFound:
		msg = "Game discovered"
		attrs = append(attrs, slog.String("title", e.Title), slog.Int("settings", e.Settings), slog.Int("expansions", e.Expansions))
	case IndexWritten:
		level, msg = slog.LevelInfo, "Generated index"
	case CoreInjected:
		level, msg = slog.LevelInfo, "Injected content links"
	case BackLinkInjected:
		msg = "Injected back link"
	case CoreSkipped, BackLinkSkipped:
		msg = "Skipped document"
		if e.Reason != ReasonNoChildren {
			level = slog.LevelWarn
		}
	case Unchanged:
		msg = "Document already up to date"
	case RebuildComplete:
		level, msg = slog.LevelInfo, "Rebuild complete"
		attrs = append(attrs, logfields.DurationMS(float64(e.Duration.Microseconds())/1000))
	case Failed:
		level, msg = slog.LevelError, "Rebuild failed"
		attrs = append(attrs, logfields.Error(e.Err))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

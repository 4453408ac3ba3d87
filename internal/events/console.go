package events

import (
	"fmt"
	"io"
)

// Console renders events as the short human-readable progress lines printed on stdout.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

var stageHeadings = map[string]string{
	StageIndex:     "Generating index...",
	StageCore:      "Injecting content links into core files...",
	StageBackLinks: "Injecting back links into settings and expansion files...",
}

func (c *Console) Report(e Event) {
	switch e.Kind {
	case RebuildStarted:
		c.printf("Building game index...\n")
	case StageStarted:
		if h, ok := stageHeadings[e.Stage]; ok {
			c.printf("\n%s\n", h)
		}
	case ScanComplete:
		c.printf("\nFound %d game(s):\n", e.Count)
	case GameFound:
		c.printf("  - %s (%d setting(s), %d expansion(s))\n", e.Title, e.Settings, e.Expansions)
	case IndexWritten:
		c.printf("  Wrote %s\n", e.Path)
	case CoreInjected:
		c.printf("  Injected content links into %s\n", e.Path)
	case BackLinkInjected:
		c.printf("  Injected back link into %s\n", e.Path)
	case CoreSkipped, BackLinkSkipped:
		if e.Reason != ReasonNoChildren {
			c.printf("  Skipped %s (%s)\n", e.Path, e.Reason)
		}
	case Unchanged:
		c.printf("  Up to date %s\n", e.Path)
	case RebuildComplete:
		c.printf("\nBuild complete!\n")
	case Failed:
		c.printf("\nBuild failed: %v\n", e.Err)
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

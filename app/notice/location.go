package notice

import (
	"fmt"
	"log/slog"
	"net/url"
)

// MemoryLocation is a Location backed by a parsed URL. Path is returned
// escaped, as a browser's location.pathname is. It keeps a single
// history entry and counts how often it was replaced.
type MemoryLocation struct {
	current      *url.URL
	replacements int
}

func NewMemoryLocation(rawURL string) (*MemoryLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location %q: %w", rawURL, err)
	}
	return &MemoryLocation{current: u}, nil
}

func (l *MemoryLocation) Path() string {
	return l.current.EscapedPath()
}

func (l *MemoryLocation) Query() string {
	return l.current.RawQuery
}

func (l *MemoryLocation) ReplaceState(rawURL string) {
	next, err := l.current.Parse(rawURL)
	if err != nil {
		slog.Error("Failed to replace location", "url", rawURL, "error", err)
		return
	}
	l.current = next
	l.replacements++
}

func (l *MemoryLocation) String() string {
	return l.current.String()
}

func (l *MemoryLocation) Replacements() int {
	return l.replacements
}

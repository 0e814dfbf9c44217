package pages

import (
	"time"

	"github.com/lysyi3m/notice-filter/app/notice"
)

// Settings are read from the optional <name>.yml next to a page.
type Settings struct {
	Title        string            `yaml:"title"`
	Placeholders map[string]string `yaml:"placeholders"` // keyed by dimension key
}

type Page struct {
	Name     string // Derived from filename (without .html extension)
	Settings Settings
	HTML     []byte // Hosting document with placeholder overrides applied
	Items    int
	Dividers int
	LoadedAt time.Time

	// Category option sets observed on the page, keyed by dimension key
	Categories map[string][]notice.Option
}

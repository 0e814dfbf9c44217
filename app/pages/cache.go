package pages

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lysyi3m/notice-filter/app/document"
	"github.com/lysyi3m/notice-filter/app/notice"
	"gopkg.in/yaml.v3"
)

var ErrPageNotFound = errors.New("page not found")

type Cache struct {
	pagesDir string
	cache    map[string]*Page
	mu       sync.RWMutex
}

func NewCache(pagesDir string) *Cache {
	return &Cache{
		pagesDir: pagesDir,
		cache:    make(map[string]*Page),
	}
}

func (pc *Cache) Run() error {
	if _, err := os.Stat(pc.pagesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(pc.pagesDir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to find HTML files: %w", err)
	}

	for _, file := range files {
		pageName := strings.TrimSuffix(filepath.Base(file), ".html")

		page, err := pc.LoadPage(pageName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Page loaded", "page", pageName, "items", page.Items, "dividers", page.Dividers)
	}

	return nil
}

func (pc *Cache) LoadPage(pageName string) (*Page, error) {
	htmlFile := filepath.Join(pc.pagesDir, pageName+".html")
	data, err := os.ReadFile(htmlFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageName)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	settings, err := pc.parseSettings(pageName)
	if err != nil {
		return nil, err
	}

	placeholders, err := settings.placeholders()
	if err != nil {
		return nil, fmt.Errorf("invalid settings for %s: %w", pageName, err)
	}

	page, err := pc.preparePage(pageName, data, placeholders)
	if err != nil {
		return nil, fmt.Errorf("invalid page %s: %w", htmlFile, err)
	}
	page.Settings = settings

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache[page.Name] = page

	return page, nil
}

func (pc *Cache) GetPage(pageName string) (*Page, error) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	page, ok := pc.cache[pageName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageName)
	}
	return page, nil
}

func (pc *Cache) GetPages() map[string]*Page {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	pagesCopy := make(map[string]*Page, len(pc.cache))
	for k, v := range pc.cache {
		pagesCopy[k] = v
	}
	return pagesCopy
}

func (pc *Cache) GetPageCount() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.cache)
}

// Stale returns the pages whose HTML or settings changed after they were
// loaded, plus pages not loaded yet.
func (pc *Cache) Stale() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(pc.pagesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to find HTML files: %w", err)
	}

	pc.mu.RLock()
	defer pc.mu.RUnlock()

	var stale []string
	for _, file := range files {
		pageName := strings.TrimSuffix(filepath.Base(file), ".html")

		page, ok := pc.cache[pageName]
		if !ok || modifiedAfter(file, page.LoadedAt) ||
			modifiedAfter(filepath.Join(pc.pagesDir, pageName+".yml"), page.LoadedAt) {
			stale = append(stale, pageName)
		}
	}
	return stale, nil
}

func modifiedAfter(path string, t time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.ModTime().After(t)
}

func (pc *Cache) parseSettings(pageName string) (Settings, error) {
	var settings Settings

	settingsFile := filepath.Join(pc.pagesDir, pageName+".yml")
	data, err := os.ReadFile(settingsFile)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse YAML %s: %w", settingsFile, err)
	}
	return settings, nil
}

func (s Settings) placeholders() (map[notice.Dimension]string, error) {
	out := make(map[notice.Dimension]string, len(s.Placeholders))
	for key, text := range s.Placeholders {
		d, ok := notice.ParseDimension(key)
		if !ok {
			return nil, fmt.Errorf("unknown placeholder dimension: %s", key)
		}
		out[d] = text
	}
	return out, nil
}

// preparePage applies the placeholder overrides and records the category
// option sets the page will offer once its selectors are populated.
func (pc *Cache) preparePage(pageName string, data []byte, placeholders map[notice.Dimension]string) (*Page, error) {
	doc, err := document.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	doc.SetPlaceholders(placeholders)

	prepared, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	// Populate a scratch copy so the served page keeps its original markup.
	scratch, err := document.ParseBytes(prepared)
	if err != nil {
		return nil, err
	}
	location, err := notice.NewMemoryLocation("/pages/" + pageName)
	if err != nil {
		return nil, err
	}
	controls, err := scratch.Bind(location)
	if err != nil {
		return nil, err
	}
	ctrl, err := notice.NewController(controls)
	if err != nil {
		return nil, err
	}
	for _, d := range notice.Dimensions {
		ctrl.PopulateSelect(d)
	}

	items, dividers := doc.Counts()
	page := &Page{
		Name:       pageName,
		HTML:       prepared,
		Items:      items,
		Dividers:   dividers,
		LoadedAt:   time.Now(),
		Categories: make(map[string][]notice.Option, len(notice.Dimensions)),
	}
	for _, d := range notice.Dimensions {
		page.Categories[d.Key()] = ctrl.Options(d)
	}
	return page, nil
}

package pages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPage = `<!DOCTYPE html>
<html><body>
<select id="mailing"></select>
<select id="general"></select>
<select id="type"></select>
<select id="regional"></select>
<select id="tier"></select>
<div class="notice" data-tier="Gold" data-regional="Minas Gerais">One</div>
<div class="divider"></div>
<div class="notice" data-tier="Silver">Two</div>
<div class="divider"></div>
<div class="notice" data-tier="Gold">Three</div>
<p id="no-notices-message">Nenhuma matéria encontrada</p>
</body></html>`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCacheLoadValidPage(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "noticias.html", testPage)
	writeFile(t, tempDir, "noticias.yml", `
title: "Clipping"
placeholders:
  tier: "Nível"
`)

	pageCache := NewCache(tempDir)
	if err := pageCache.Run(); err != nil {
		t.Fatal(err)
	}

	if pageCache.GetPageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", pageCache.GetPageCount())
	}

	page, err := pageCache.GetPage("noticias")
	if err != nil {
		t.Fatal(err)
	}

	if page.Name != "noticias" {
		t.Errorf("Expected name 'noticias', got '%s'", page.Name)
	}
	if page.Settings.Title != "Clipping" {
		t.Errorf("Expected title 'Clipping', got '%s'", page.Settings.Title)
	}
	if page.Items != 3 || page.Dividers != 2 {
		t.Errorf("Expected 3 items and 2 dividers, got %d and %d", page.Items, page.Dividers)
	}

	tiers := page.Categories["tier"]
	if len(tiers) != 2 || tiers[0].Value != "gold" || tiers[1].Value != "silver" {
		t.Errorf("Unexpected tier categories: %v", tiers)
	}
	if regions := page.Categories["regional"]; len(regions) != 1 || regions[0].Label != "Minas Gerais" {
		t.Errorf("Unexpected regional categories: %v", regions)
	}
	if mailing := page.Categories["mailing"]; mailing == nil || len(mailing) != 0 {
		t.Errorf("Expected empty mailing categories, got %v", mailing)
	}

	html := string(page.HTML)
	if !strings.Contains(html, `data-placeholder="Nível"`) {
		t.Errorf("Expected placeholder override in served HTML")
	}
	if strings.Contains(html, "<option") {
		t.Errorf("Served HTML should keep unpopulated selectors")
	}
}

func TestCacheLoadPageWithoutSettings(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "noticias.html", testPage)

	pageCache := NewCache(tempDir)
	page, err := pageCache.LoadPage("noticias")
	if err != nil {
		t.Fatal(err)
	}
	if page.Settings.Title != "" || len(page.Settings.Placeholders) != 0 {
		t.Errorf("Expected empty settings, got %+v", page.Settings)
	}
}

func TestCacheUnknownPlaceholderDimension(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "noticias.html", testPage)
	writeFile(t, tempDir, "noticias.yml", "placeholders:\n  colour: \"Cor\"\n")

	pageCache := NewCache(tempDir)
	if err := pageCache.Run(); err == nil {
		t.Error("Expected error for unknown placeholder dimension")
	}
}

func TestCacheMissingControl(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "broken.html", strings.Replace(testPage, `<select id="tier"></select>`, "", 1))

	pageCache := NewCache(tempDir)
	_, err := pageCache.LoadPage("broken")
	if err == nil {
		t.Fatal("Expected error for page without tier selector")
	}
	if !strings.Contains(err.Error(), "#tier") {
		t.Errorf("Expected error to name #tier, got %v", err)
	}
	if pageCache.GetPageCount() != 0 {
		t.Errorf("Broken page should not be cached")
	}
}

func TestCacheGetPageNotFound(t *testing.T) {
	pageCache := NewCache(t.TempDir())

	if _, err := pageCache.GetPage("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got %v", err)
	}
	if _, err := pageCache.LoadPage("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound from LoadPage, got %v", err)
	}
}

func TestCacheMissingDirectory(t *testing.T) {
	pageCache := NewCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := pageCache.Run(); err != nil {
		t.Errorf("Expected no error for missing directory, got %v", err)
	}
	if pageCache.GetPageCount() != 0 {
		t.Errorf("Expected no pages, got %d", pageCache.GetPageCount())
	}
}

func TestCacheStale(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "noticias.html", testPage)

	pageCache := NewCache(tempDir)
	if err := pageCache.Run(); err != nil {
		t.Fatal(err)
	}

	stale, err := pageCache.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Errorf("Expected no stale pages right after loading, got %v", stale)
	}

	writeFile(t, tempDir, "clipping.html", testPage)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(tempDir, "noticias.html"), future, future); err != nil {
		t.Fatal(err)
	}

	stale, err = pageCache.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 2 {
		t.Errorf("Expected 2 stale pages, got %v", stale)
	}
}

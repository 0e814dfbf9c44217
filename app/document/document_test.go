package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/notice-filter/app/notice"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Notícias</title></head>
<body>
  <select id="mailing"></select>
  <select id="general"></select>
  <select id="type" data-placeholder="Media type"></select>
  <select id="regional"></select>
  <select id="tier"></select>

  <div class="notice" data-tier="Gold" data-type="Press Release" data-regional="Minas Gerais">First</div>
  <hr class="divider">
  <div class="notice" data-tier="Silver" data-type="Video">Second</div>
  <hr class="divider">
  <div class="notice" data-tier="Gold" data-type="Press Release" style="color: red">Third</div>

  <p id="no-notices-message" style="display: none">Nenhuma matéria encontrada</p>
</body>
</html>`

func bind(t *testing.T, rawURL string) (*Document, *notice.Controller, *notice.MemoryLocation) {
	t.Helper()

	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	location, err := notice.NewMemoryLocation(rawURL)
	if err != nil {
		t.Fatal(err)
	}
	controls, err := doc.Bind(location)
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := notice.NewController(controls)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Init()
	return doc, ctrl, location
}

func render(t *testing.T, doc *Document) *goquery.Document {
	t.Helper()

	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	out, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func displays(out *goquery.Document, selector string) []string {
	var result []string
	out.Find(selector).Each(func(_ int, s *goquery.Selection) {
		result = append(result, styleProperty(s.AttrOr("style", ""), "display"))
	})
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBind_PopulatesSelectors(t *testing.T) {
	doc, ctrl, _ := bind(t, "/noticias")
	out := render(t, doc)

	var values, labels []string
	out.Find("select#tier option").Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.AttrOr("value", "?"))
		labels = append(labels, s.Text())
	})
	if !equalStrings(values, []string{"", "gold", "silver"}) {
		t.Errorf("Unexpected tier option values: %v", values)
	}
	if !equalStrings(labels, []string{"Tier", "Gold", "Silver"}) {
		t.Errorf("Unexpected tier option labels: %v", labels)
	}

	if got := out.Find("select#type option").First().Text(); got != "Media type" {
		t.Errorf("Expected placeholder from data-placeholder, got '%s'", got)
	}
	if got := len(ctrl.Options(notice.Regional)); got != 1 {
		t.Errorf("Expected 1 regional option, got %d", got)
	}
}

func TestBind_TierFilter(t *testing.T) {
	doc, ctrl, location := bind(t, "/noticias")

	ctrl.OnFilterChanged(notice.Tier, "gold")
	out := render(t, doc)

	if got := displays(out, ".notice"); !equalStrings(got, []string{"block", "none", "block"}) {
		t.Errorf("Unexpected notice display states: %v", got)
	}
	if got := displays(out, ".divider"); !equalStrings(got, []string{"none", "none"}) {
		t.Errorf("Unexpected divider display states: %v", got)
	}
	if got := displays(out, "#"+MessageID); !equalStrings(got, []string{"none"}) {
		t.Errorf("Expected message hidden, got %v", got)
	}
	if got := out.Find("select#tier option[selected]").AttrOr("value", ""); got != "gold" {
		t.Errorf("Expected gold selected, got '%s'", got)
	}
	if got := location.String(); got != "/noticias?tier=gold" {
		t.Errorf("Expected '/noticias?tier=gold', got '%s'", got)
	}

	if got := out.Find(".notice").Last().AttrOr("style", ""); !strings.Contains(got, "color: red") {
		t.Errorf("Existing style declarations should be kept, got '%s'", got)
	}
}

func TestBind_TypeFromURL(t *testing.T) {
	doc, ctrl, _ := bind(t, "/noticias?type=press-release")

	if got := ctrl.Selection().Get(notice.Type); got != "press-release" {
		t.Errorf("Expected type selector 'press-release', got '%s'", got)
	}

	out := render(t, doc)
	if got := displays(out, ".notice"); !equalStrings(got, []string{"block", "none", "block"}) {
		t.Errorf("Unexpected notice display states: %v", got)
	}
}

func TestBind_NothingMatches(t *testing.T) {
	doc, ctrl, _ := bind(t, "/noticias?tier=silver&type=press-release")

	if ctrl.VisibleCount() != 0 {
		t.Errorf("Expected no visible notices, got %d", ctrl.VisibleCount())
	}

	out := render(t, doc)
	if got := displays(out, ".notice"); !equalStrings(got, []string{"none", "none", "none"}) {
		t.Errorf("Unexpected notice display states: %v", got)
	}
	if got := displays(out, ".divider"); !equalStrings(got, []string{"none", "none"}) {
		t.Errorf("Unexpected divider display states: %v", got)
	}
	if got := displays(out, "#"+MessageID); !equalStrings(got, []string{"block"}) {
		t.Errorf("Expected message shown, got %v", got)
	}
}

func TestBind_MissingControls(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		want   string
	}{
		{"selector", `<select id="regional"></select>`, "#regional"},
		{"message", `<p id="no-notices-message" style="display: none">Nenhuma matéria encontrada</p>`, "#" + MessageID},
	}

	for _, tt := range tests {
		doc, err := Parse(strings.NewReader(strings.Replace(page, tt.remove, "", 1)))
		if err != nil {
			t.Fatal(err)
		}
		location, _ := notice.NewMemoryLocation("/noticias")

		_, err = doc.Bind(location)
		if !errors.Is(err, ErrMissingControl) {
			t.Errorf("%s: expected ErrMissingControl, got %v", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error to name %s, got %v", tt.name, tt.want, err)
		}
	}
}

func TestSetPlaceholders(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	doc.SetPlaceholders(map[notice.Dimension]string{notice.Tier: "Nível"})

	location, _ := notice.NewMemoryLocation("/noticias")
	controls, err := doc.Bind(location)
	if err != nil {
		t.Fatal(err)
	}
	if got := controls.Placeholders[notice.Tier]; got != "Nível" {
		t.Errorf("Expected placeholder 'Nível', got '%s'", got)
	}
	if got := controls.Placeholders[notice.Type]; got != "Media type" {
		t.Errorf("Expected placeholder 'Media type', got '%s'", got)
	}
	if _, ok := controls.Placeholders[notice.Mailing]; ok {
		t.Error("Mailing should keep its default placeholder")
	}

	items, dividers := doc.Counts()
	if items != 3 || dividers != 2 {
		t.Errorf("Expected 3 items and 2 dividers, got %d and %d", items, dividers)
	}
}

func TestParseBytes_Empty(t *testing.T) {
	if _, err := ParseBytes(nil); err == nil {
		t.Error("Expected error for empty HTML data")
	}
}

func TestStyleProperty(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"", ""},
		{"display: none", "none"},
		{"color: red; DISPLAY:block;", "block"},
		{"display: block; display: none", "none"},
		{"color: red", ""},
	}
	for _, tt := range tests {
		if got := styleProperty(tt.style, "display"); got != tt.want {
			t.Errorf("styleProperty(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestSetStyleProperty(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"", "display: none;"},
		{"color: red", "color: red; display: none;"},
		{"display: block; color: red;", "display: none; color: red;"},
		{"display: block; display: inline", "display: none;"},
	}
	for _, tt := range tests {
		if got := setStyleProperty(tt.style, "display", "none"); got != tt.want {
			t.Errorf("setStyleProperty(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/notice-filter/app/notice"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ItemSelector    = ".notice"
	DividerSelector = ".divider"
	MessageID       = "no-notices-message"
	PlaceholderAttr = "data-placeholder"

	displayProperty = "display"
	displayVisible  = "block"
	displayHidden   = "none"
)

// ErrMissingControl is notice.ErrMissingControl; binding wraps it with the
// id of the absent element.
var ErrMissingControl = notice.ErrMissingControl

// Document is a parsed hosting page.
type Document struct {
	doc *goquery.Document
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

func ParseBytes(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}
	return Parse(bytes.NewReader(data))
}

// Bind collects the page elements in document order. Every selector and
// the empty-state message must be present.
func (d *Document) Bind(location notice.Location) (notice.Controls, error) {
	controls := notice.Controls{
		Selectors:    make(map[notice.Dimension]notice.Selector),
		Placeholders: make(map[notice.Dimension]string),
		Location:     location,
	}

	for _, dim := range notice.Dimensions {
		sel := d.doc.Find("select#" + dim.Key()).First()
		if sel.Length() == 0 {
			return notice.Controls{}, fmt.Errorf("%w: #%s", ErrMissingControl, dim.Key())
		}
		controls.Selectors[dim] = &selectElement{sel: sel}
		if p, ok := sel.Attr(PlaceholderAttr); ok && p != "" {
			controls.Placeholders[dim] = p
		}
	}

	message := d.doc.Find("#" + MessageID).First()
	if message.Length() == 0 {
		return notice.Controls{}, fmt.Errorf("%w: #%s", ErrMissingControl, MessageID)
	}
	controls.Message = element{sel: message}

	d.doc.Find(ItemSelector).Each(func(_ int, s *goquery.Selection) {
		controls.Items = append(controls.Items, item{element{sel: s}})
	})
	d.doc.Find(DividerSelector).Each(func(_ int, s *goquery.Selection) {
		controls.Dividers = append(controls.Dividers, element{sel: s})
	})

	return controls, nil
}

// SetPlaceholders stores placeholder overrides on the selectors so any
// host binding the page picks them up.
func (d *Document) SetPlaceholders(placeholders map[notice.Dimension]string) {
	for dim, p := range placeholders {
		if p == "" {
			continue
		}
		d.doc.Find("select#"+dim.Key()).First().SetAttr(PlaceholderAttr, p)
	}
}

// Counts returns the number of notices and dividers on the page.
func (d *Document) Counts() (items, dividers int) {
	return d.doc.Find(ItemSelector).Length(), d.doc.Find(DividerSelector).Length()
}

func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return nil
}

func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type element struct {
	sel *goquery.Selection
}

func (e element) Visible() bool {
	return styleProperty(e.sel.AttrOr("style", ""), displayProperty) != displayHidden
}

func (e element) SetVisible(visible bool) {
	value := displayHidden
	if visible {
		value = displayVisible
	}
	e.sel.SetAttr("style", setStyleProperty(e.sel.AttrOr("style", ""), displayProperty, value))
}

type item struct {
	element
}

func (i item) Attr(name string) string {
	return i.sel.AttrOr(name, "")
}

type selectElement struct {
	sel *goquery.Selection
}

func (s *selectElement) options() *goquery.Selection {
	return s.sel.Find("option")
}

func (s *selectElement) Value() string {
	selected := s.options().FilterFunction(func(_ int, o *goquery.Selection) bool {
		_, ok := o.Attr("selected")
		return ok
	}).First()
	if selected.Length() == 0 {
		selected = s.options().First()
	}
	if selected.Length() == 0 {
		return ""
	}
	return optionValue(selected)
}

func (s *selectElement) SetValue(value string) {
	options := s.options()
	options.RemoveAttr("selected")
	options.EachWithBreak(func(_ int, o *goquery.Selection) bool {
		if optionValue(o) == value {
			o.SetAttr("selected", "selected")
			return false
		}
		return true
	})
}

func (s *selectElement) Reset(placeholder string) {
	s.sel.Empty()
	s.AddOption("", placeholder)
}

func (s *selectElement) AddOption(value, label string) {
	s.sel.AppendNodes(newOption(value, label))
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(o.Text())
}

func newOption(value, label string) *html.Node {
	option := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Option.String(),
		DataAtom: atom.Option,
		Attr:     []html.Attribute{{Key: "value", Val: value}},
	}
	option.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	return option
}

//go:build js && wasm

// Package dom binds the live browser document and window.history to a
// notice.Controller.
package dom

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/lysyi3m/notice-filter/app/notice"
)

const (
	itemSelector    = ".notice"
	dividerSelector = ".divider"
	messageID       = "no-notices-message"
	placeholderAttr = "data-placeholder"
)

// Bind collects the page controls from document. Every selector and the
// empty-state message must be present.
func Bind(window js.Value) (notice.Controls, error) {
	document := window.Get("document")

	controls := notice.Controls{
		Selectors:    make(map[notice.Dimension]notice.Selector),
		Placeholders: make(map[notice.Dimension]string),
		Location:     location{window: window},
	}

	for _, d := range notice.Dimensions {
		el := document.Call("getElementById", d.Key())
		if el.IsNull() {
			return notice.Controls{}, fmt.Errorf("%w: #%s", notice.ErrMissingControl, d.Key())
		}
		controls.Selectors[d] = selectElement{el: el, document: document}
		if p := attr(el, placeholderAttr); p != "" {
			controls.Placeholders[d] = p
		}
	}

	message := document.Call("getElementById", messageID)
	if message.IsNull() {
		return notice.Controls{}, fmt.Errorf("%w: #%s", notice.ErrMissingControl, messageID)
	}
	controls.Message = element{el: message}

	each(document.Call("querySelectorAll", itemSelector), func(el js.Value) {
		controls.Items = append(controls.Items, item{element{el: el}})
	})
	each(document.Call("querySelectorAll", dividerSelector), func(el js.Value) {
		controls.Dividers = append(controls.Dividers, element{el: el})
	})

	return controls, nil
}

func each(list js.Value, fn func(js.Value)) {
	for i := 0; i < list.Length(); i++ {
		fn(list.Index(i))
	}
}

func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

type element struct {
	el js.Value
}

func (e element) Visible() bool {
	return e.el.Get("style").Get("display").String() != "none"
}

func (e element) SetVisible(visible bool) {
	display := "none"
	if visible {
		display = "block"
	}
	e.el.Get("style").Set("display", display)
}

type item struct {
	element
}

func (i item) Attr(name string) string {
	return attr(i.el, name)
}

type selectElement struct {
	el       js.Value
	document js.Value
}

func (s selectElement) Value() string {
	return s.el.Get("value").String()
}

func (s selectElement) SetValue(value string) {
	s.el.Set("value", value)
}

func (s selectElement) Reset(placeholder string) {
	for s.el.Get("options").Length() > 0 {
		s.el.Call("remove", 0)
	}
	s.AddOption("", placeholder)
}

func (s selectElement) AddOption(value, label string) {
	option := s.document.Call("createElement", "option")
	option.Set("value", value)
	option.Set("textContent", label)
	s.el.Call("appendChild", option)
}

// OnChange keeps the callback for the lifetime of the page.
func (s selectElement) OnChange(fn func()) {
	s.el.Call("addEventListener", "change", js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	}))
}

type location struct {
	window js.Value
}

func (l location) Path() string {
	return l.window.Get("location").Get("pathname").String()
}

func (l location) Query() string {
	return strings.TrimPrefix(l.window.Get("location").Get("search").String(), "?")
}

func (l location) ReplaceState(url string) {
	l.window.Get("history").Call("replaceState", js.Null(), "", url)
}

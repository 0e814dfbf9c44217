package notice

import (
	"fmt"
	"log/slog"
)

// Controls are the page elements a Controller drives. Items and Dividers
// are index-aligned: divider i sits between item i and item i+1.
type Controls struct {
	Selectors    map[Dimension]Selector
	Items        []Item
	Dividers     []Element
	Message      Element
	Location     Location
	Placeholders map[Dimension]string
}

// Controller filters notices by the five dimensions and mirrors the
// selection into the page URL. It is not safe for concurrent use; every
// call runs to completion before the next one.
type Controller struct {
	selectors    [dimensionCount]Selector
	placeholders [dimensionCount]string
	options      [dimensionCount][]Option
	items        []Item
	dividers     []Element
	message      Element
	location     Location
	visible      int
}

func NewController(c Controls) (*Controller, error) {
	ctrl := &Controller{
		items:    c.Items,
		dividers: c.Dividers,
		message:  c.Message,
		location: c.Location,
	}

	for _, d := range Dimensions {
		s, ok := c.Selectors[d]
		if !ok || s == nil {
			return nil, fmt.Errorf("%w: selector %q", ErrMissingControl, d.Key())
		}
		ctrl.selectors[d] = s

		ctrl.placeholders[d] = d.Placeholder()
		if p := c.Placeholders[d]; p != "" {
			ctrl.placeholders[d] = p
		}
	}
	if c.Message == nil {
		return nil, fmt.Errorf("%w: empty-state message", ErrMissingControl)
	}
	if c.Location == nil {
		return nil, fmt.Errorf("%w: location", ErrMissingControl)
	}

	return ctrl, nil
}

// Init populates every selector, subscribes to selector changes and then
// loads the selection from the URL. Population has to come first: a
// selector only accepts a value it has an option for.
func (c *Controller) Init() {
	for _, d := range Dimensions {
		c.PopulateSelect(d)
	}

	for _, d := range Dimensions {
		notifier, ok := c.selectors[d].(ChangeNotifier)
		if !ok {
			continue
		}
		notifier.OnChange(func() {
			c.OnFilterChanged(d, c.selectors[d].Value())
		})
	}

	c.LoadFiltersFromURL()
}

// PopulateSelect fills the selector of d with one option per distinct
// category found on the items, in order of first appearance, after a
// single placeholder option with an empty value.
func (c *Controller) PopulateSelect(d Dimension) {
	seen := make(map[string]bool)
	var options []Option
	for _, item := range c.items {
		label := item.Attr(d.Attribute())
		token := Normalize(label)
		// Labels that only differ in case or spacing share the first
		// label's option.
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		options = append(options, Option{Value: token, Label: label})
	}

	s := c.selectors[d]
	s.Reset(c.placeholders[d])
	for _, o := range options {
		s.AddOption(o.Value, o.Label)
	}
	c.options[d] = options
}

// Options returns the category options built for d, without the
// placeholder.
func (c *Controller) Options(d Dimension) []Option {
	out := make([]Option, len(c.options[d]))
	copy(out, c.options[d])
	return out
}

// Selection reads the current value of every selector.
func (c *Controller) Selection() Selection {
	var s Selection
	for _, d := range Dimensions {
		s.values[d] = c.selectors[d].Value()
	}
	return s
}

// ApplyFilters shows exactly the items matching the current selection,
// then updates the dividers and the empty-state message.
func (c *Controller) ApplyFilters() {
	selection := c.Selection()

	visible := 0
	for _, item := range c.items {
		matches := selection.Matches(item)
		item.SetVisible(matches)
		if matches {
			visible++
		}
	}
	c.visible = visible

	c.HandleDividers()

	c.message.SetVisible(visible == 0)

	slog.Debug("Filters applied", "query", selection.Query(), "visible", visible, "total", len(c.items))
}

// HandleDividers shows a divider only when the items on both sides of it
// are visible.
func (c *Controller) HandleDividers() {
	var lastVisible Item

	for i, divider := range c.dividers {
		var previous, next Item
		if i < len(c.items) {
			previous = c.items[i]
		}
		if i+1 < len(c.items) {
			next = c.items[i+1]
		}

		previousVisible := previous != nil && previous.Visible()
		nextVisible := next != nil && next.Visible()

		divider.SetVisible(previousVisible && nextVisible)

		if nextVisible {
			lastVisible = next
		}
	}

	// Trailing correction: the last divider goes when the last item seen
	// visible on the far side of a divider is no longer visible.
	// TODO: drop it once nothing between the capture above and this check
	// can change an item's visibility.
	if lastVisible != nil && !lastVisible.Visible() && len(c.dividers) > 0 {
		c.dividers[len(c.dividers)-1].SetVisible(false)
	}
}

// VisibleCount is the number of items shown by the last filter pass.
func (c *Controller) VisibleCount() int {
	return c.visible
}

// UpdateURL writes the current selection into the location, replacing the
// current history entry, and re-applies the filters.
func (c *Controller) UpdateURL() {
	url := c.location.Path()
	if query := c.Selection().Query(); query != "" {
		url += "?" + query
	}
	c.location.ReplaceState(url)

	slog.Debug("Location replaced", "url", url)

	c.ApplyFilters()
}

// LoadFiltersFromURL sets every selector from the location's query,
// clearing selectors whose key is absent, and applies the filters. The
// location is left untouched.
func (c *Controller) LoadFiltersFromURL() {
	selection := SelectionFromQuery(c.location.Query())
	for _, d := range Dimensions {
		c.selectors[d].SetValue(selection.Get(d))
	}

	c.ApplyFilters()
}

// OnFilterChanged is called by the input layer when the user picks value
// for d.
func (c *Controller) OnFilterChanged(d Dimension, value string) {
	c.selectors[d].SetValue(value)
	c.UpdateURL()
}

package notice

import "errors"

// Dimension is one of the five filterable attributes of a notice.
type Dimension int

const (
	Mailing Dimension = iota
	General
	Type
	Regional
	Tier

	dimensionCount = int(Tier) + 1
)

// Dimensions lists every dimension in the order selectors are populated
// and query parameters are written.
var Dimensions = []Dimension{Mailing, General, Type, Regional, Tier}

type dimensionInfo struct {
	key         string
	attribute   string
	placeholder string
}

var dimensionTable = [dimensionCount]dimensionInfo{
	Mailing:  {key: "mailing", attribute: "data-mailing-category", placeholder: "Categorias do Mailling"},
	General:  {key: "general", attribute: "data-general-category", placeholder: "Categorias gerais"},
	Type:     {key: "type", attribute: "data-type", placeholder: "Tipo de mídia"},
	Regional: {key: "regional", attribute: "data-regional", placeholder: "Regional"},
	Tier:     {key: "tier", attribute: "data-tier", placeholder: "Tier"},
}

// Key is the query parameter name and the selector id of the dimension.
func (d Dimension) Key() string {
	return dimensionTable[d].key
}

// Attribute is the data attribute a notice carries for the dimension.
func (d Dimension) Attribute() string {
	return dimensionTable[d].attribute
}

// Placeholder is the default text of the selector's empty option.
func (d Dimension) Placeholder() string {
	return dimensionTable[d].placeholder
}

func (d Dimension) String() string {
	if d < 0 || int(d) >= dimensionCount {
		return "unknown"
	}
	return d.Key()
}

// ParseDimension maps a query key back to its dimension.
func ParseDimension(key string) (Dimension, bool) {
	for _, d := range Dimensions {
		if d.Key() == key {
			return d, true
		}
	}
	return 0, false
}

// ErrMissingControl is returned when a selector, the empty-state message
// or the location is absent from the controls handed to the controller.
var ErrMissingControl = errors.New("missing control")

// Element is anything whose display state the controller toggles.
type Element interface {
	Visible() bool
	SetVisible(visible bool)
}

// Item is a displayable notice. Attr returns "" for an absent attribute.
type Item interface {
	Element
	Attr(name string) string
}

// Selector is a dropdown control for one dimension.
//
// SetValue only takes effect when an option with that value exists;
// otherwise the selector falls back to the empty value.
type Selector interface {
	Value() string
	SetValue(value string)
	Reset(placeholder string)
	AddOption(value, label string)
}

// ChangeNotifier is implemented by selectors that report user changes.
type ChangeNotifier interface {
	OnChange(fn func())
}

// Location is the page URL the filter state is mirrored into.
type Location interface {
	Path() string
	// Query returns the raw query string without the leading '?'.
	Query() string
	// ReplaceState swaps the current history entry for url without
	// reloading and without adding a new entry.
	ReplaceState(url string)
}

// Option is one entry of a selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

package notice

// Select is an in-memory Selector with browser semantics: setting a value
// that no option carries leaves the selector on the empty value.
type Select struct {
	options   []Option
	value     string
	listeners []func()
}

func NewSelect() *Select {
	return &Select{}
}

func (s *Select) Value() string {
	return s.value
}

func (s *Select) SetValue(value string) {
	for _, o := range s.options {
		if o.Value == value {
			s.value = value
			return
		}
	}
	s.value = ""
}

func (s *Select) Reset(placeholder string) {
	s.options = []Option{{Value: "", Label: placeholder}}
	s.value = ""
}

func (s *Select) AddOption(value, label string) {
	s.options = append(s.options, Option{Value: value, Label: label})
}

func (s *Select) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

func (s *Select) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Choose sets the value the way a user would and fires change listeners.
func (s *Select) Choose(value string) {
	s.SetValue(value)
	for _, fn := range s.listeners {
		fn()
	}
}

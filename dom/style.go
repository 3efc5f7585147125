package dom

import (
	"strconv"
	"strings"
)

// Style is an inline CSS declaration block. Property names are stored in
// lower case, in first-set order.
type Style struct {
	names  []string
	values map[string]string
}

// SetCSSText replaces every declaration with those in text, e.g.
// "position: fixed; top: 0".
func (s *Style) SetCSSText(text string) {
	s.names = nil
	s.values = nil

	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.Set(name, value)
	}
}

func (s *Style) CSSText() string {
	var b strings.Builder
	for i, n := range s.names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n)
		b.WriteString(": ")
		b.WriteString(s.values[n])
		b.WriteByte(';')
	}
	return b.String()
}

func (s *Style) Set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" {
		return
	}

	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

func (s *Style) Get(name string) string {
	return s.values[strings.ToLower(name)]
}

// Pixels reads a length such as "40px" or "0". Other units are not
// understood.
func (s *Style) Pixels(name string) (float64, bool) {
	v := strings.TrimSuffix(s.Get(name), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Opacity is the "opacity" property clamped to [0, 1], 1 when unset.
func (s *Style) Opacity() float64 {
	v := s.Get("opacity")
	if v == "" {
		return 1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

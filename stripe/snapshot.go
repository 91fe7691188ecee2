package stripe

// Saved holds attribute values captured by Snapshot.
type Saved struct {
	values map[Attribute]string
}

// Snapshot captures the current value of each attr. Unknown attributes are
// ignored. With no arguments every known attribute is captured.
func Snapshot(attrs ...Attribute) *Saved {
	if len(attrs) == 0 {
		attrs = Attributes
	}

	mu.RLock()
	defer mu.RUnlock()

	s := &Saved{values: make(map[Attribute]string, len(attrs))}
	for _, attr := range attrs {
		if !known(attr) {
			continue
		}
		s.values[attr] = settings[attr]
	}
	return s
}

// Restore writes every captured value back. It may be called more than once.
func (s *Saved) Restore() {
	mu.Lock()
	defer mu.Unlock()
	for attr, v := range s.values {
		settings[attr] = v
	}
}

// Value returns the captured value of attr and whether it was captured.
func (s *Saved) Value(attr Attribute) (string, bool) {
	v, ok := s.values[attr]
	return v, ok
}

// Attributes returns the captured attribute names in the order of Attributes.
func (s *Saved) Attributes() []Attribute {
	out := make([]Attribute, 0, len(s.values))
	for _, attr := range Attributes {
		if _, ok := s.values[attr]; ok {
			out = append(out, attr)
		}
	}
	return out
}

package fields

import (
	"bytes"
	"encoding/json"
)

// Result is the ordered field→value mapping of one extraction pass.
// Re-setting a name replaces its value but keeps its original position.
type Result struct {
	names  []string
	values map[string]string
}

func NewResult(capacity int) *Result {
	return &Result{
		names:  make([]string, 0, capacity),
		values: make(map[string]string, capacity),
	}
}

// Set stores value under name and reports whether name was already present.
func (r *Result) Set(name, value string) bool {
	_, replaced := r.values[name]
	if !replaced {
		r.names = append(r.names, name)
	}
	r.values[name] = value
	return replaced
}

func (r *Result) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Result) Len() int { return len(r.names) }

// Names returns the field names in insertion order.
func (r *Result) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Each visits entries in insertion order.
func (r *Result) Each(fn func(name, value string)) {
	for _, n := range r.names {
		fn(n, r.values[n])
	}
}

// MarshalJSON writes an object whose keys keep insertion order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[n])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

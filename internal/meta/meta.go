// Package meta holds ordered, loosely typed metadata decoded from YAML front
// matter and JSON or YAML structured pages.
//
// Values are restricted to string, int, float64, bool, nil, Map and []any.
package meta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that remembers insertion order.
// The zero value is an empty, usable map.
type Map struct {
	keys   []string
	values map[string]any
}

// Decode parses a YAML (or JSON) document whose root is a mapping.
// An empty document yields an empty Map.
func Decode(data []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Map{}, err
	}
	if doc.Kind == 0 {
		return Map{}, nil
	}
	v, err := FromNode(&doc)
	if err != nil {
		return Map{}, err
	}
	switch m := v.(type) {
	case Map:
		return m, nil
	case nil:
		return Map{}, nil
	default:
		return Map{}, fmt.Errorf("expected a mapping at document root, got %T", v)
	}
}

// DecodeJSON parses a JSON document whose root is an object. Keys keep their
// document order; integral numbers become int and the rest float64.
func DecodeJSON(data []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return Map{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Map{}, errors.New("unexpected data after JSON document")
	}
	m, ok := v.(Map)
	if !ok {
		return Map{}, fmt.Errorf("expected an object at document root, got %T", v)
	}
	return m, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := Map{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("offset %d: object key is not a string", dec.InputOffset())
				}
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			out := []any{}
			for dec.More() {
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, fmt.Errorf("offset %d: unexpected %v", dec.InputOffset(), t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// FromNode converts a yaml.Node tree into the closed value set.
func FromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.MappingNode:
		m := Map{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := FromNode(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := FromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!int":
		var i int
		err := n.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	default:
		// !!str, !!timestamp and anything exotic stay as written.
		return n.Value, nil
	}
}

// Set inserts or replaces a key. Replacing keeps the original position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or nil.
func (m Map) Get(key string) any {
	return m.values[key]
}

// Has reports whether key is present (even with a nil value).
func (m Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// String returns the value for key when it is a string.
func (m Map) String(key string) (string, bool) {
	s, ok := m.values[key].(string)
	return s, ok
}

// Map returns the nested mapping stored under key.
func (m Map) Map(key string) (Map, bool) {
	sub, ok := m.values[key].(Map)
	return sub, ok
}

// Len returns the number of keys.
func (m Map) Len() int { return len(m.keys) }

// Keys returns the keys in document order.
func (m Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All yields key/value pairs in document order. Templates can range over it.
func (m Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Without returns a copy of m lacking the given keys.
func (m Map) Without(keys ...string) Map {
	skip := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		skip[k] = struct{}{}
	}
	out := Map{}
	for _, k := range m.keys {
		if _, drop := skip[k]; !drop {
			out.Set(k, m.values[k])
		}
	}
	return out
}

// MarshalJSON encodes the map as a JSON object preserving key order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

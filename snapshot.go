package confz

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"

	"gopkg.in/yaml.v3"
)

// Snapshot is the effective value of every registered key at the time
// Configuration.Current was called. Iteration follows registration order.
type Snapshot struct {
	keys   []string
	values map[string]any
}

// Keys returns the snapshot keys in registration order.
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Get returns the value recorded for key.
func (s Snapshot) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of keys.
func (s Snapshot) Len() int {
	return len(s.keys)
}

// Map returns the snapshot as a plain map.
func (s Snapshot) Map() map[string]any {
	return maps.Clone(s.values)
}

// All iterates over key/value pairs in registration order.
func (s Snapshot) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range s.keys {
			if !yield(key, s.values[key]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the snapshot as an object with keys in
// registration order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[key])
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

// MarshalYAML encodes the snapshot as a mapping with keys in
// registration order.
func (s Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range s.keys {
		var value yaml.Node
		if err := value.Encode(s.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}
	return node, nil
}

package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stat is one labelled dossier statistic.
type Stat struct {
	Key   string
	Value string
}

// Stats keeps dossier statistics in descriptor order.
type Stats []Stat

// Get returns the value for key.
func (s Stats) Get(key string) (string, bool) {
	for _, stat := range s {
		if stat.Key == key {
			return stat.Value, true
		}
	}
	return "", false
}

// set replaces the value of an existing key in place, or appends a new stat.
func (s Stats) set(key, value string) Stats {
	for idx := range s {
		if s[idx].Key == key {
			s[idx].Value = value
			return s
		}
	}
	return append(s, Stat{Key: key, Value: value})
}

// MarshalJSON encodes stats as an object, preserving order.
func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, stat := range s {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(stat.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(stat.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of scalar values. Non-string scalars are
// kept in their literal form. A repeated key keeps its first position and its
// last value.
func (s *Stats) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode stats: expected object")
	}

	out := Stats{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode stats key: %w", err)
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode stat %q: %w", key, err)
		}
		out = out.set(key, scalarText(raw))
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	*s = out
	return nil
}

// UnmarshalYAML decodes a mapping node, preserving key order. Repeated keys
// behave as in UnmarshalJSON.
func (s *Stats) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("decode stats: line %d: expected mapping", node.Line)
	}
	out := make(Stats, 0, len(node.Content)/2)
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		keyNode, valueNode := node.Content[idx], node.Content[idx+1]
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("decode stat %q: line %d: expected scalar", keyNode.Value, valueNode.Line)
		}
		value := valueNode.Value
		if valueNode.Tag == "!!null" {
			value = ""
		}
		out = out.set(keyNode.Value, value)
	}
	*s = out
	return nil
}

func scalarText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return text
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return strings.TrimSpace(string(trimmed))
	}
	return compact.String()
}

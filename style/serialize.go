package style

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The host boundary transports the model as a plain nested key-value
// structure.  JSON is the wire shape: unset fields are omitted entirely
// (never coerced to zero values), lengths are integers in twips, sizes in
// half-points, and colours are 6-hex-digit strings.  Slice ordering is the
// source document ordering and survives the round trip.

// Marshal encodes the model as JSON bytes.
func (m *Model) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal style model: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a model from its JSON representation.
func Unmarshal(data []byte) (*Model, error) {
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("unmarshal style model: %w", err)
	}
	if m.Alignment == "" {
		m.Alignment = AlignLeft
	}
	return m, nil
}

// Map converts the model into a generic nested key-value structure, the form
// handed across the host boundary for transport and debugging.
func (m *Model) Map() (map[string]any, error) {
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("style model to map: %w", err)
	}
	return out, nil
}

// FromMap rebuilds a model from the generic key-value form produced by Map.
func FromMap(kv map[string]any) (*Model, error) {
	data, err := json.Marshal(kv)
	if err != nil {
		return nil, fmt.Errorf("style model from map: %w", err)
	}
	return Unmarshal(data)
}

package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/quill/pkg/core"
)

// Codec defines how the note collection is turned into a blob and back.
type Codec interface {
	// Name identifies the codec (e.g. "json").
	Name() string
	// Encode serializes the whole collection.
	Encode(notes []core.Note) ([]byte, error)
	// Decode parses a blob produced by Encode.
	Decode(data []byte) ([]core.Note, error)
}

// DefaultCodecs returns the standard set of codecs, keyed by name.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		"json": NewJSONCodec(),
		"yaml": NewYAMLCodec(),
	}
}

// CodecNames lists the registered default codecs in stable order.
func CodecNames() []string {
	names := make([]string, 0, 2)
	for name := range DefaultCodecs() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodecByName resolves one of the default codecs.
func CodecByName(name string) (Codec, error) {
	c, ok := DefaultCodecs()[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
	return c, nil
}

// --- JSON Codec ---

// JSONCodec writes a compact JSON array, the layout used by the browser edition.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Name() string { return "json" }

func (c *JSONCodec) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return json.Marshal(notes)
}

func (c *JSONCodec) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return notes, nil
}

// --- YAML Codec ---

// YAMLCodec writes the collection as a YAML sequence, handy for hand editing.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Name() string { return "yaml" }

func (c *YAMLCodec) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}

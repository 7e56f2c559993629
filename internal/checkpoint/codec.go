package checkpoint

import (
	"encoding/json"
	"fmt"
	"io"
)

const defaultIndent = "  "

// Codec defines how a checkpoint is serialized.
type Codec interface {
	// Encode writes v to w.
	Encode(w io.Writer, v any) error

	// Decode reads v from r.
	Decode(r io.Reader, v any) error

	// Extension returns the file extension, including the dot.
	Extension() string
}

// JSONCodec implements Codec using JSON encoding with optional indentation.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (2-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.
func (c *JSONCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if c.Indent != "" {
		enc.SetIndent("", c.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// Decode implements Codec. Unknown fields are rejected.
func (c *JSONCodec) Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}

// Extension implements Codec.
func (c *JSONCodec) Extension() string {
	return ".json"
}

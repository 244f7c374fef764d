package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseJSON decodes a JSON document into a Value. Integral numbers stay in
// the integer domain.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("failed to decode json: %w", err)
	}

	// Reject trailing documents
	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("failed to decode json: unexpected data after document")
	}

	return FromNative(raw), nil
}

// MarshalJSON encodes v as JSON
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

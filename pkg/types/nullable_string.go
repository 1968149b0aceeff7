package types

import (
	"bytes"
	"encoding/json"
)

// NullableString tracks whether a string field was explicitly present in
// JSON, so a PATCH body can distinguish "set to null" from "leave alone".
type NullableString struct {
	Valid bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	var parsed string
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Valid = true
	n.Value = &parsed
	return nil
}

// Clone returns a copy of the NullableString.
func (n NullableString) Clone() NullableString {
	if n.Value == nil {
		return NullableString{Valid: n.Valid}
	}
	value := *n.Value
	return NullableString{Valid: n.Valid, Value: &value}
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque backend identifier.
// The backend emits integer keys for some resources and UUIDs for others;
// both are carried as text.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty
func (id ID) IsZero() bool {
	return id == ""
}

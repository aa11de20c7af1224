package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the paginated list shape
type envelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// decodeList normalizes a bare JSON array and a {"results": [...]} envelope
// into the same slice. null and an envelope without results yield an empty
// slice.
func decodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}

	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode list envelope: %w", err)
		}
		if env.Results == nil {
			return []T{}, nil
		}
		return env.Results, nil
	default:
		return nil, fmt.Errorf("unexpected list payload starting with %q", data[0])
	}
}

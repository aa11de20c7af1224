package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/felixgeelhaar/omsctl/internal/security"
)

const (
	// DetailKey selects the backend's top-level "detail" message
	DetailKey = "detail"

	// NonFieldKey selects DRF's "non_field_errors" list
	NonFieldKey = "non_field_errors"
)

// APIError is a non-2xx response from the backend.
//
// Django REST Framework reports failures as {"detail": "..."} for
// authentication and permission errors, and as a map of field name to a
// message list for validation errors.
type APIError struct {
	StatusCode int
	RequestID  string
	Detail     string
	Fields     map[string][]string
	NonField   []string
	Raw        []byte
}

func (e *APIError) Error() string {
	if msg := e.Summary(); msg != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Lookup returns the message stored under key, joining list values
func (e *APIError) Lookup(key string) string {
	switch key {
	case DetailKey:
		return e.Detail
	case NonFieldKey:
		return strings.Join(e.NonField, " ")
	default:
		return strings.Join(e.Fields[key], " ")
	}
}

// Summary is the most specific message available, for logs and CLI output
func (e *APIError) Summary() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.NonField) > 0 {
		return strings.Join(e.NonField, " ")
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
		}
		return strings.Join(parts, "; ")
	}
	if len(e.Raw) > 0 && len(e.Raw) <= 200 {
		return security.Redact(string(bytes.TrimSpace(e.Raw)))
	}
	return http.StatusText(e.StatusCode)
}

// IsAuth reports whether the backend rejected the credentials or the role
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsValidation reports whether the backend rejected the submitted fields
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest && (len(e.Fields) > 0 || len(e.NonField) > 0)
}

// TransportError means no HTTP response was received
type TransportError struct {
	Method    string
	Path      string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request hit the client deadline
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// decodeAPIError parses the known DRF error shapes and keeps anything else raw
func decodeAPIError(status int, requestID string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		RequestID:  requestID,
		Raw:        body,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apiErr
	}

	for key, raw := range fields {
		msgs := decodeMessages(raw)
		if len(msgs) == 0 {
			continue
		}
		switch key {
		case DetailKey:
			apiErr.Detail = strings.Join(msgs, " ")
		case NonFieldKey:
			apiErr.NonField = msgs
		default:
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = msgs
		}
	}
	return apiErr
}

// decodeMessages accepts "msg", ["msg", ...] or a nested object whose
// values are flattened in key order.
func decodeMessages(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, decodeMessages(item)...)
		}
		return out
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		keys := make([]string, 0, len(nested))
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []string
		for _, k := range keys {
			out = append(out, decodeMessages(nested[k])...)
		}
		return out
	}

	return nil
}

// Message picks the first non-empty backend message among keys, in order,
// or returns fallback. Transport failures always yield fallback.
func Message(err error, fallback string, keys ...string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	for _, key := range keys {
		if msg := apiErr.Lookup(key); msg != "" {
			return msg
		}
	}
	return fallback
}

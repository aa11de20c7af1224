package platform

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAPIError_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		detail    string
		fields    map[string][]string
		nonField  []string
		summary   string
		validates bool
	}{
		{
			name:    "detail",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"No active account found with the given credentials"}`,
			detail:  "No active account found with the given credentials",
			summary: "No active account found with the given credentials",
		},
		{
			name:      "field list",
			status:    http.StatusBadRequest,
			body:      `{"email":["user with this email already exists."],"role_key":["\"Boss\" is not a valid choice."]}`,
			fields:    map[string][]string{"email": {"user with this email already exists."}, "role_key": {`"Boss" is not a valid choice.`}},
			summary:   `email: user with this email already exists.; role_key: "Boss" is not a valid choice.`,
			validates: true,
		},
		{
			name:      "field string",
			status:    http.StatusBadRequest,
			body:      `{"status_reason":"Reason required."}`,
			fields:    map[string][]string{"status_reason": {"Reason required."}},
			summary:   "status_reason: Reason required.",
			validates: true,
		},
		{
			name:      "non field errors",
			status:    http.StatusBadRequest,
			body:      `{"non_field_errors":["End date precedes start date."]}`,
			nonField:  []string{"End date precedes start date."},
			summary:   "End date precedes start date.",
			validates: true,
		},
		{
			name:    "html error page",
			status:  http.StatusInternalServerError,
			body:    `<h1>Server Error (500)</h1>`,
			summary: `<h1>Server Error (500)</h1>`,
		},
		{
			name:    "raw body with token",
			status:  http.StatusBadGateway,
			body:    `upstream rejected Bearer abc.def.ghi`,
			summary: `upstream rejected Bearer ***REDACTED***`,
		},
		{
			name:    "empty body",
			status:  http.StatusBadGateway,
			body:    ``,
			summary: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := decodeAPIError(tt.status, "req-1", []byte(tt.body))

			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "req-1", apiErr.RequestID)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, tt.fields, apiErr.Fields)
			assert.Equal(t, tt.nonField, apiErr.NonField)
			assert.Equal(t, tt.summary, apiErr.Summary())
			assert.Equal(t, tt.validates, apiErr.IsValidation())
		})
	}
}

func TestDecodeMessages_Nested(t *testing.T) {
	apiErr := decodeAPIError(http.StatusBadRequest, "", []byte(`{"profile":{"b":["second"],"a":"first"}}`))
	assert.Equal(t, []string{"first", "second"}, apiErr.Fields["profile"])
}

func TestMessage_KeyChain(t *testing.T) {
	registerKeys := []string{DetailKey, "email", "role_key"}
	const fallback = "Registration failed."

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "detail wins",
			err:  decodeAPIError(403, "", []byte(`{"detail":"You do not have permission to perform this action.","email":["x"]}`)),
			want: "You do not have permission to perform this action.",
		},
		{
			name: "email before role_key",
			err:  decodeAPIError(400, "", []byte(`{"role_key":["bad role"],"email":["user with this email already exists."]}`)),
			want: "user with this email already exists.",
		},
		{
			name: "role_key",
			err:  decodeAPIError(400, "", []byte(`{"role_key":["bad role"]}`)),
			want: "bad role",
		},
		{
			name: "unlisted field falls back",
			err:  decodeAPIError(400, "", []byte(`{"password":["too short"]}`)),
			want: fallback,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("register: %w", decodeAPIError(400, "", []byte(`{"email":["taken"]}`))),
			want: "taken",
		},
		{
			name: "transport error",
			err:  &TransportError{Method: "POST", Path: "users/register/", Err: errors.New("connection refused")},
			want: fallback,
		},
		{
			name: "nil error",
			err:  nil,
			want: fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, fallback, registerKeys...))
		})
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Method: "GET", Path: "attendance/", RequestID: "r", Err: cause}

	assert.True(t, errors.Is(err, cause))
	assert.False(t, err.Timeout())
	assert.Contains(t, err.Error(), "GET attendance/")
}

type listItem struct {
	ID int `json:"id"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []listItem
		wantErr bool
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, want: []listItem{{1}, {2}}},
		{name: "envelope", body: `{"count":2,"next":null,"results":[{"id":1},{"id":2}]}`, want: []listItem{{1}, {2}}},
		{name: "empty array", body: `[]`, want: []listItem{}},
		{name: "envelope without results", body: `{"count":0}`, want: []listItem{}},
		{name: "null", body: `null`, want: []listItem{}},
		{name: "empty body", body: ``, want: []listItem{}},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "bad element", body: `[{"id":"x"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[listItem]([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTokenPayload(t *testing.T) {
	resp, err := splitTokenPayload([]byte(`{"access":"a","refresh":"r","id":5,"email":"e@x.y","first_name":"E","role":"Front Desk","pto_balance_days":"7.5"}`))
	require.NoError(t, err)

	assert.Equal(t, "a", resp.Access)
	assert.Equal(t, "r", resp.Refresh)
	assert.Equal(t, "5", resp.Profile.ID.String())
	assert.Equal(t, "Front Desk", resp.Profile.Role.String())
	assert.InDelta(t, 7.5, float64(resp.Profile.PTOBalanceDays), 0.0001)

	_, err = splitTokenPayload([]byte(`{"refresh":"r","id":5}`))
	assert.True(t, errors.Is(err, ErrNoAccessToken))
}

func TestSplitTokenPayload_MistypedTokens(t *testing.T) {
	for _, body := range []string{
		`{"access":42,"refresh":"r"}`,
		`{"access":"a","refresh":{"value":"r"}}`,
	} {
		_, err := splitTokenPayload([]byte(body))
		require.Error(t, err, body)
		assert.False(t, errors.Is(err, ErrNoAccessToken), body)
		assert.Contains(t, err.Error(), "token response")
	}

	_, err := splitTokenPayload([]byte(`{"access":null,"refresh":"r"}`))
	assert.True(t, errors.Is(err, ErrNoAccessToken))
}

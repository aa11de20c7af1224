package domain

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "integer", input: `42`, want: "42"},
		{name: "uuid string", input: `"7c9e6679-7425-40de-944b-e07fc1f90ae7"`, want: "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{name: "null", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ID
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	var bad ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &bad); err == nil {
		t.Error("expected error for object id")
	}
}

func TestDays_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Days
		wantErr bool
	}{
		{name: "decimal string", input: `"10.0"`, want: 10},
		{name: "number", input: `2.5`, want: 2.5},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "garbage string", input: `"ten"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Days
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDays_ValidateRequest(t *testing.T) {
	valid := []Days{0.5, 1, 1.5, 10}
	for _, d := range valid {
		if err := d.ValidateRequest(); err != nil {
			t.Errorf("%v should be valid: %v", d, err)
		}
	}

	invalid := []Days{0, 0.25, -1, 1.3}
	for _, d := range invalid {
		if err := d.ValidateRequest(); err == nil {
			t.Errorf("%v should be invalid", d)
		}
	}
}

func TestDays_Format(t *testing.T) {
	if Days(10).String() != "10.0" {
		t.Errorf("unexpected String(): %s", Days(10).String())
	}

	data, err := json.Marshal(Days(1.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1.5" {
		t.Errorf("unexpected JSON: %s", data)
	}
}

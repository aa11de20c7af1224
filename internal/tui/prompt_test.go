package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/omsctl/internal/views"
)

func TestShouldPrompt_DisabledByEnvironment(t *testing.T) {
	for _, key := range []string{"OMS_NO_INPUT", "CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "1")
			assert.False(t, ShouldPrompt())
		})
	}
}

func TestValidator(t *testing.T) {
	errWeekend := errors.New("weekends are not working days")

	tests := []struct {
		name    string
		prompt  views.Prompt
		input   string
		wantErr error
	}{
		{name: "required blank", prompt: views.Prompt{Required: true}, input: "   ", wantErr: errors.New("value is required")},
		{name: "optional blank", prompt: views.Prompt{}, input: ""},
		{name: "custom check runs", prompt: views.Prompt{Validate: func(string) error { return errWeekend }}, input: "2025-03-08", wantErr: errWeekend},
		{name: "required and valid", prompt: views.Prompt{Required: true, Validate: func(string) error { return nil }}, input: "Family visit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.prompt)(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr.Error(), err.Error())
		})
	}
}

func TestHuhOptions_SelectsDefault(t *testing.T) {
	choices := []views.Choice{
		{Label: "Sam Rivera (Sales Rep)", Value: "1"},
		{Label: "Lee Park (Front Desk)", Value: "2"},
	}

	options := huhOptions(choices, "2")
	require.Len(t, options, 2)
	assert.Equal(t, "Sam Rivera (Sales Rep)", options[0].Key)
	assert.Equal(t, "1", options[0].Value)
	assert.Equal(t, "2", options[1].Value)
}

func TestHuhPrompter_SelectWithoutOptions(t *testing.T) {
	_, err := HuhPrompter{}.Select("Choose an employee", nil, "")
	assert.Error(t, err)
}

package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/omsctl/internal/views"
)

// HuhPrompter runs one huh form per prompt
type HuhPrompter struct {
	// Accessible switches huh to its screen-reader friendly mode
	Accessible bool
}

var _ views.Prompter = HuhPrompter{}

func (h HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithAccessible(h.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return views.ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// validator folds the Required flag into the prompt's own check
func validator(p views.Prompt) func(string) error {
	return func(s string) error {
		if p.Required && strings.TrimSpace(s) == "" {
			return errors.New("value is required")
		}
		if p.Validate != nil {
			return p.Validate(s)
		}
		return nil
	}
}

// String shows an input, a password field or a text area
func (h HuhPrompter) String(p views.Prompt) (string, error) {
	value := p.Default
	validate := validator(p)

	var field huh.Field
	if p.Multiline {
		field = huh.NewText().
			Title(p.Message).
			Placeholder(p.Placeholder).
			Validate(validate).
			Value(&value)
	} else {
		input := huh.NewInput().
			Title(p.Message).
			Placeholder(p.Placeholder).
			Validate(validate).
			Value(&value)
		if p.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		field = input
	}

	if err := h.run(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question
func (h HuhPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := h.run(confirm); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Select offers choices by label and returns the chosen value
func (h HuhPrompter) Select(message string, choices []views.Choice, defaultValue string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	options := huhOptions(choices, defaultValue)

	selected := defaultValue
	selectField := huh.NewSelect[string]().
		Title(message).
		Options(options...).
		Value(&selected)

	if err := h.run(selectField); err != nil {
		return "", err
	}
	return selected, nil
}

func huhOptions(choices []views.Choice, defaultValue string) []huh.Option[string] {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value).Selected(c.Value == defaultValue)
	}
	return options
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt reports whether forms may be shown. OMS_NO_INPUT and the
// usual CI variables turn them off, as does a piped stdin.
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"OMS_NO_INPUT",
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}

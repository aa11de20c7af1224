package views

import "errors"

// ErrAborted is returned by a Prompter when the user cancels
var ErrAborted = errors.New("prompt aborted")

// Prompt describes one text question
type Prompt struct {
	Message     string
	Default     string
	Placeholder string
	Required    bool
	Secret      bool
	Multiline   bool
	Validate    func(string) error
}

// Choice is one option of a select prompt
type Choice struct {
	Label string
	Value string
}

// Prompter asks the user for values
type Prompter interface {
	String(p Prompt) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, choices []Choice, defaultValue string) (string, error)
}

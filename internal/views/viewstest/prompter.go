// Package viewstest provides a scripted Prompter for tests that drive
// interactive screens.
package viewstest

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Abort scripted as a string or select answer cancels the prompt
const Abort = "\x00abort"

// Prompter answers prompts in order from its scripts and records every
// question asked. An unscripted prompt is an error.
type Prompter struct {
	mu sync.Mutex

	Strings  []string
	Confirms []bool
	Selects  []string

	// Asked lists prompt messages in the order they were shown
	Asked []string
}

var _ views.Prompter = (*Prompter)(nil)

// String pops the next string answer and runs the prompt's validator on it
func (s *Prompter) String(p views.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, p.Message)
	if len(s.Strings) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", p.Message)
	}
	v := s.Strings[0]
	s.Strings = s.Strings[1:]
	if v == Abort {
		return "", views.ErrAborted
	}
	if p.Validate != nil {
		if err := p.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// Confirm pops the next yes/no answer
func (s *Prompter) Confirm(message string, _ bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, message)
	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm %q", message)
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// Select pops the next value, which must be one of the offered choices
func (s *Prompter) Select(message string, choices []views.Choice, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, message)
	if len(s.Selects) == 0 {
		return "", fmt.Errorf("unexpected select %q", message)
	}
	v := s.Selects[0]
	s.Selects = s.Selects[1:]
	if v == Abort {
		return "", views.ErrAborted
	}
	for _, c := range choices {
		if c.Value == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%q is not offered by %q", v, message)
}

// Done reports whether every scripted answer was used
func (s *Prompter) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Strings) == 0 && len(s.Confirms) == 0 && len(s.Selects) == 0
}

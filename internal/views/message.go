// Package views holds the screens of the client. Each view keeps its own
// state, talks to the backend through a narrow interface and reports
// outcomes as a Message.
package views

// Kind classifies a Message
type Kind int

const (
	KindNone Kind = iota
	KindInfo
	KindSuccess
	KindError
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Message is the banner a view shows after an action
type Message struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// IsZero reports whether there is nothing to show
func (m Message) IsZero() bool {
	return m.Kind == KindNone && m.Text == ""
}

// IsError reports whether the message describes a failure
func (m Message) IsError() bool {
	return m.Kind == KindError
}

func info(text string) Message {
	return Message{Kind: KindInfo, Text: text}
}

func success(text string) Message {
	return Message{Kind: KindSuccess, Text: text}
}

func failure(text string) Message {
	return Message{Kind: KindError, Text: text}
}

package types

import "context"

const (
	keyName   = "homework_name"
	keyStatus = "status"
)

type Sender interface {
	Post(ctx context.Context, text string) error
}

// Homework is a single entry of the homework_statuses response, kept as the
// decoded JSON object so that missing and mistyped fields can be told apart.
type Homework map[string]any

// Name returns the homework name, ok is false when it is missing or not a
// string.
func (h Homework) Name() (string, bool) {
	s, ok := h[keyName].(string)
	return s, ok
}

// Status returns the raw status, or "" when it is missing or not a string.
func (h Homework) Status() string {
	s, _ := h[keyStatus].(string)
	return s
}

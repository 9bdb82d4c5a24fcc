package poller

// Kind is the closed set of reasons an iteration can fail for.
type Kind int

const (
	KindTransport Kind = iota
	KindHTTPStatus
	KindFormat
	KindResponse
	KindStatus
	// KindUnexpected and KindPanic point at a bug rather than at the API.
	KindUnexpected
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http status"
	case KindFormat:
		return "format"
	case KindResponse:
		return "response"
	case KindStatus:
		return "status"
	case KindUnexpected:
		return "unexpected"
	case KindPanic:
		return "panic"
	}
	return "unknown"
}

type IterationError struct {
	Kind Kind
	Err  error
}

func (e *IterationError) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *IterationError) Unwrap() error {
	return e.Err
}

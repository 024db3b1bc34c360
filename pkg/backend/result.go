package backend

// Kind tags how a backend call ended.
type Kind int

const (
	KindOK Kind = iota
	// KindHTTPError: the backend answered with a non-2xx status.
	KindHTTPError
	// KindTransportError: no usable answer (connection failure, unreadable or undecodable body).
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindHTTPError:
		return "http_error"
	case KindTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result keeps the three outcomes apart so callers can tell an application
// error from a transport failure even when both end up as the same bubble.
type Result[T any] struct {
	Kind    Kind
	Payload T
	Status  int
	// Message is the backend "error" field for KindHTTPError; may be empty.
	Message string
	Err     error
}

func Ok[T any](status int, payload T) Result[T] {
	return Result[T]{Kind: KindOK, Status: status, Payload: payload}
}

func HTTPError[T any](status int, message string) Result[T] {
	return Result[T]{Kind: KindHTTPError, Status: status, Message: message}
}

func TransportError[T any](err error) Result[T] {
	return Result[T]{Kind: KindTransportError, Err: err}
}

func (r Result[T]) IsOK() bool             { return r.Kind == KindOK }
func (r Result[T]) IsHTTPError() bool      { return r.Kind == KindHTTPError }
func (r Result[T]) IsTransportError() bool { return r.Kind == KindTransportError }

package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindNetwork is a transport failure: no response was received.
	KindNetwork Kind = iota + 1
	// KindStatus is a non-2xx response.
	KindStatus
	// KindDecode is a response whose body did not have the expected shape.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method that fails after local checks.
type Error struct {
	Kind   Kind
	Op     string // e.g. "GET /api/reports"
	Status int    // HTTP status, KindStatus only
	// Message is the server-provided message, verbatim. It may be empty.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s: %d: %s", e.Op, e.Status, e.Message)
		}
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or 0 if err is not a client error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.Message
	}
	return ""
}

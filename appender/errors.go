package appender

import (
	"errors"

	"github.com/logfwd/logfwd/scribe"
)

// Code classifies appender failures.
type Code int

const (
	_ Code = iota

	// ConfigError marks an invalid configuration. It is fatal to
	// activation and returned directly to the caller.
	ConfigError

	// ConnectError marks a failure to establish the remote connection at
	// activation time.
	ConnectError

	// SubmitError marks a batch the remote server rejected with a non-OK
	// result code.
	SubmitError

	// TransportError marks an I/O or protocol failure during a call.
	TransportError
)

func (c Code) String() string {
	switch c {
	case ConfigError:
		return "CONFIG"
	case ConnectError:
		return "CONNECT"
	case SubmitError:
		return "SUBMIT"
	case TransportError:
		return "TRANSPORT"
	default:
		return "<invalid Code value>"
	}
}

// Error carries a failure classification, a descriptive message, and the
// triggering cause, if any. Errors from append and close paths are reported
// to the configured ErrorSink rather than returned.
type Error struct {
	Code   Code
	Msg    string
	Result scribe.ResultCode // set for SubmitError
	Err    error
}

func (e *Error) Error() string {
	s := e.Code.String() + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the triggering cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the triggering cause, if any.
func (e *Error) Cause() error { return e.Err }

// CodeOf returns the classification of err, or zero when err is not an
// appender error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

package appender

import (
	"io"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: ConnectError, Msg: "connecting to 127.0.0.1:1463 failed", Err: io.EOF}
	assert.Equal(t, "CONNECT: connecting to 127.0.0.1:1463 failed: EOF", err.Error())

	err = &Error{Code: ConfigError, Msg: "remote host is required"}
	assert.Equal(t, "CONFIG: remote host is required", err.Error())
}

func TestErrorCause(t *testing.T) {
	err := &Error{Code: TransportError, Msg: "submitting batch failed", Err: pkgerrors.WithStack(io.ErrClosedPipe)}
	assert.Equal(t, io.ErrClosedPipe, pkgerrors.Cause(err))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, SubmitError, CodeOf(&Error{Code: SubmitError, Msg: "rejected"}))
	assert.Equal(t, Code(0), CodeOf(io.EOF))
	assert.Equal(t, Code(0), CodeOf(nil))
}

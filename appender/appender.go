// Package appender forwards log events to a remote log-aggregation server.
//
// Appender implements the sink contract: activate with a validated Config,
// append rendered messages one at a time or as caller-assembled batches,
// and close. Each message becomes one category/message entry submitted
// through the scribe client in a single call; non-OK result codes and
// transport failures are funneled to a configurable ErrorSink instead of
// being returned on the logging hot path.
//
// Handler adapts an Appender to log/slog, so the appender can be installed
// as a handler for the standard structured logging framework.
package appender

import (
	"context"
	"sync"

	"github.com/apache/thrift/lib/go/thrift"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"github.com/logfwd/logfwd/internal"
	"github.com/logfwd/logfwd/scribe"
)

type appenderState uint32

const (
	_ appenderState = iota

	stateUnconfigured
	stateValidating
	stateConnected
	stateClosed
)

func (s appenderState) String() string {
	switch s {
	case stateUnconfigured:
		return "UNCONFIGURED"
	case stateValidating:
		return "VALIDATING"
	case stateConnected:
		return "CONNECTED"
	case stateClosed:
		return "CLOSED"
	default:
		return "<invalid appenderState value>"
	}
}

// conn owns the transport handle set as a single unit. It is either fully
// established or absent; no partial states.
type conn struct {
	sock      *thrift.TSocket
	transport *thrift.TFramedTransport
	proto     *thrift.TBinaryProtocol
	client    *scribe.Client
}

// Appender forwards rendered log messages to the remote server. Calls are
// synchronous and block until the round-trip completes or the configured
// timeout elapses. The connection handles are guarded by a mutex, so the
// hosting framework may append from multiple goroutines.
type Appender struct {
	conf *Config
	sink ErrorSink

	mu    sync.Mutex
	conn  *conn
	state appenderState
	enc   *encoding.Encoder
}

// New returns a new instance of Appender without a connection. Failures are
// written to stderr until an ErrorSink is configured.
func New(conf *Config) *Appender {
	return &Appender{
		conf:  conf,
		sink:  &StderrSink{},
		state: stateUnconfigured,
	}
}

// WithErrorSink sets the sink receiving append and close path failures. It
// should be called as part of initialization.
func (a *Appender) WithErrorSink(sink ErrorSink) *Appender {
	a.sink = sink
	return a
}

// Activate validates the configuration and establishes the remote
// connection. Configuration errors are returned directly, since activation
// is not a logging hot path. Connection failures are reported to the error
// sink and leave the appender unconnected; there is no automatic retry, but
// a later activation may succeed. Activating a connected appender replaces
// the connection wholesale.
func (a *Appender) Activate() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = stateValidating
	if err := a.conf.Validate(); err != nil {
		a.state = stateUnconfigured
		return err
	}
	enc, err := a.conf.encoder()
	if err != nil {
		a.state = stateUnconfigured
		return err
	}
	a.enc = enc

	a.closeConn()

	tconf := &thrift.TConfiguration{
		ConnectTimeout: a.conf.Timeout,
		SocketTimeout:  a.conf.Timeout,
	}
	sock := thrift.NewTSocketConf(a.conf.Hostport(), tconf)
	trans := thrift.NewTFramedTransportConf(sock, tconf)

	internal.Debugf(a.conf.Verbose, "connecting to %s", a.conf.Hostport())
	if err := trans.Open(); err != nil {
		a.state = stateUnconfigured
		a.sink.HandleError(&Error{
			Code: ConnectError,
			Msg:  "connecting to " + a.conf.Hostport() + " failed",
			Err:  err,
		})
		return nil
	}

	proto := thrift.NewTBinaryProtocolConf(trans, tconf)
	a.conn = &conn{
		sock:      sock,
		transport: trans,
		proto:     proto,
		client:    scribe.NewClient(thrift.NewTStandardClient(proto, proto)),
	}
	a.state = stateConnected
	internal.Debugf(a.conf.Verbose, "connected to %s", a.conf.Hostport())
	return nil
}

// Append submits one rendered message tagged with the configured category.
// Failures are reported to the error sink.
func (a *Appender) Append(message string) {
	a.submit([]string{message})
}

// AppendBatch submits the messages in input order as one call, each tagged
// with the configured category. Delivery atomicity is whatever the remote
// call guarantees; there is no partial-batch retry.
func (a *Appender) AppendBatch(messages []string) {
	a.submit(messages)
}

func (a *Appender) submit(messages []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		a.sink.HandleError(&Error{Code: TransportError, Msg: "appender is not connected"})
		return
	}

	entries := make([]*scribe.LogEntry, 0, len(messages))
	for _, msg := range messages {
		encoded, err := a.encode(msg)
		if err != nil {
			a.sink.HandleError(&Error{Code: TransportError, Msg: "encoding message failed", Err: err})
			return
		}
		entries = append(entries, &scribe.LogEntry{Category: a.conf.Category, Message: encoded})
	}

	internal.Debugf(a.conf.Verbose, "%d entries -> %s", len(entries), a.conf.Hostport())
	rc, err := a.conn.client.Log(context.Background(), entries)
	if err != nil {
		// the connection may be stale now; it is replaced on the next
		// activation, not here
		a.sink.HandleError(&Error{
			Code: TransportError,
			Msg:  "submitting batch failed",
			Err:  pkgerrors.WithStack(err),
		})
		return
	}
	if rc != scribe.ResultOK {
		a.sink.HandleError(&Error{
			Code:   SubmitError,
			Msg:    "server rejected batch: " + rc.String(),
			Result: rc,
		})
	}
}

func (a *Appender) encode(msg string) (string, error) {
	if a.enc == nil {
		return msg, nil
	}
	return a.enc.String(msg)
}

// Close tears down the connection. Transport close failures are swallowed,
// and logged in verbose mode. Closing an appender that has no connection is
// a no-op.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}
	a.closeConn()
	a.state = stateClosed
	return nil
}

func (a *Appender) closeConn() {
	if a.conn == nil {
		return
	}
	internal.IgnoreError(a.conf.Verbose, a.conn.transport.Close())
	a.conn = nil
}

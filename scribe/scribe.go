// Package scribe contains client and server stubs for the remote log
// submission service.
//
// The service is a fixed two-method contract: submit an ordered batch of
// category/message entries, receive a result code. Client issues the call
// over any thrift.TClient. Processor dispatches incoming calls to a Scribe
// implementation, and is used by receivers and test servers.
//
// Wire format and framing are supplied entirely by the thrift runtime; this
// package only describes the shape of the call.
package scribe

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// ResultCode is returned by the remote service for each submitted batch.
// Only ResultOK indicates the batch was accepted.
type ResultCode int32

const (
	ResultOK       ResultCode = 0
	ResultTryLater ResultCode = 1
)

func (rc ResultCode) String() string {
	switch rc {
	case ResultOK:
		return "OK"
	case ResultTryLater:
		return "TRY_LATER"
	default:
		return fmt.Sprintf("<UNSET(%d)>", int32(rc))
	}
}

// LogEntry is a single category/message pair. Entries are built per log
// event and consumed immediately by the submission call.
type LogEntry struct {
	Category string
	Message  string
}

func (e *LogEntry) String() string {
	return fmt.Sprintf("LogEntry(%q, %q)", e.Category, e.Message)
}

// Read deserializes the entry from a thrift protocol.
func (e *LogEntry) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError("read struct begin error: ", err)
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError("read field begin error: ", err)
		}
		if fieldType == thrift.STOP {
			break
		}
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return thrift.PrependError("read category error: ", err)
			}
			e.Category = v
		case fieldID == 2 && fieldType == thrift.STRING:
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return thrift.PrependError("read message error: ", err)
			}
			e.Message = v
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

// Write serializes the entry to a thrift protocol.
func (e *LogEntry) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "LogEntry"); err != nil {
		return thrift.PrependError("write struct begin error: ", err)
	}
	if err := oprot.WriteFieldBegin(ctx, "category", thrift.STRING, 1); err != nil {
		return thrift.PrependError("write field begin error: ", err)
	}
	if err := oprot.WriteString(ctx, e.Category); err != nil {
		return thrift.PrependError("write category error: ", err)
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "message", thrift.STRING, 2); err != nil {
		return thrift.PrependError("write field begin error: ", err)
	}
	if err := oprot.WriteString(ctx, e.Message); err != nil {
		return thrift.PrependError("write message error: ", err)
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// Scribe is the remote submission contract.
type Scribe interface {
	// Log submits an ordered batch of entries and returns the server's
	// result code.
	Log(ctx context.Context, messages []*LogEntry) (ResultCode, error)
}

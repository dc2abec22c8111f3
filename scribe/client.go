package scribe

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// Client calls the remote submission service over a thrift.TClient.
type Client struct {
	c thrift.TClient
}

// NewClient returns a Client issuing calls through c.
func NewClient(c thrift.TClient) *Client {
	return &Client{c: c}
}

// Log implements Scribe.
func (c *Client) Log(ctx context.Context, messages []*LogEntry) (ResultCode, error) {
	args := logArgs{Messages: messages}
	var result logResult
	if _, err := c.c.Call(ctx, "Log", &args, &result); err != nil {
		return ResultTryLater, err
	}
	if result.Success == nil {
		return ResultTryLater, thrift.NewTApplicationException(
			thrift.MISSING_RESULT, "Log failed: unknown result")
	}
	return *result.Success, nil
}

type logArgs struct {
	Messages []*LogEntry
}

func (a *logArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		if fieldID == 1 && fieldType == thrift.LIST {
			_, size, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return thrift.PrependError("read list begin error: ", err)
			}
			a.Messages = make([]*LogEntry, 0, size)
			for i := 0; i < size; i++ {
				entry := &LogEntry{}
				if err := entry.Read(ctx, iprot); err != nil {
					return err
				}
				a.Messages = append(a.Messages, entry)
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		} else {
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

func (a *logArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Log_args"); err != nil {
		return thrift.PrependError("write struct begin error: ", err)
	}
	if err := oprot.WriteFieldBegin(ctx, "messages", thrift.LIST, 1); err != nil {
		return thrift.PrependError("write field begin error: ", err)
	}
	if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(a.Messages)); err != nil {
		return thrift.PrependError("write list begin error: ", err)
	}
	for _, entry := range a.Messages {
		if err := entry.Write(ctx, oprot); err != nil {
			return err
		}
	}
	if err := oprot.WriteListEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

type logResult struct {
	Success *ResultCode
}

func (r *logResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		if fieldID == 0 && fieldType == thrift.I32 {
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return thrift.PrependError("read result error: ", err)
			}
			rc := ResultCode(v)
			r.Success = &rc
		} else {
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

func (r *logResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Log_result"); err != nil {
		return thrift.PrependError("write struct begin error: ", err)
	}
	if r.Success != nil {
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.I32, 0); err != nil {
			return thrift.PrependError("write field begin error: ", err)
		}
		if err := oprot.WriteI32(ctx, int32(*r.Success)); err != nil {
			return thrift.PrependError("write result error: ", err)
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

package scribe

import (
	"context"
	"errors"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
)

func newProtocol() (*thrift.TMemoryBuffer, thrift.TProtocol) {
	buf := thrift.NewTMemoryBuffer()
	return buf, thrift.NewTBinaryProtocolConf(buf, nil)
}

func TestLogEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, proto := newProtocol()

	in := &LogEntry{Category: "app", Message: "hello éü 日本語"}
	if err := in.Write(ctx, proto); err != nil {
		t.Fatalf("writing entry: %+v", err)
	}

	out := &LogEntry{}
	if err := out.Read(ctx, proto); err != nil {
		t.Fatalf("reading entry: %+v", err)
	}
	if out.Category != in.Category {
		t.Fatalf("expected category %q but got %q", in.Category, out.Category)
	}
	if out.Message != in.Message {
		t.Fatalf("expected message %q but got %q", in.Message, out.Message)
	}
}

type recorderHandler struct {
	batches [][]*LogEntry
	rc      ResultCode
	err     error
}

func (h *recorderHandler) Log(ctx context.Context, messages []*LogEntry) (ResultCode, error) {
	h.batches = append(h.batches, messages)
	return h.rc, h.err
}

func writeCall(t *testing.T, proto thrift.TProtocol, entries []*LogEntry) {
	t.Helper()
	ctx := context.Background()
	if err := proto.WriteMessageBegin(ctx, "Log", thrift.CALL, 1); err != nil {
		t.Fatalf("writing message begin: %+v", err)
	}
	args := logArgs{Messages: entries}
	if err := args.Write(ctx, proto); err != nil {
		t.Fatalf("writing args: %+v", err)
	}
	if err := proto.WriteMessageEnd(ctx); err != nil {
		t.Fatalf("writing message end: %+v", err)
	}
	if err := proto.Flush(ctx); err != nil {
		t.Fatalf("flushing call: %+v", err)
	}
}

func TestProcessorDispatch(t *testing.T) {
	ctx := context.Background()
	_, in := newProtocol()
	_, out := newProtocol()

	entries := []*LogEntry{
		{Category: "app", Message: "first"},
		{Category: "app", Message: "second"},
	}
	writeCall(t, in, entries)

	handler := &recorderHandler{rc: ResultOK}
	proc := NewProcessor(handler)

	ok, perr := proc.Process(ctx, in, out)
	if !ok {
		t.Fatalf("expected ok but got error: %+v", perr)
	}
	if len(handler.batches) != 1 {
		t.Fatalf("expected 1 batch but got %d", len(handler.batches))
	}
	got := handler.batches[0]
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries but got %d", len(entries), len(got))
	}
	for i, entry := range entries {
		if got[i].Category != entry.Category || got[i].Message != entry.Message {
			t.Fatalf("entry %d: expected %s but got %s", i, entry, got[i])
		}
	}

	name, typeID, seqID, err := out.ReadMessageBegin(ctx)
	if err != nil {
		t.Fatalf("reading reply begin: %+v", err)
	}
	if name != "Log" || typeID != thrift.REPLY || seqID != 1 {
		t.Fatalf("unexpected reply header: %s %v %d", name, typeID, seqID)
	}
	var result logResult
	if err := result.Read(ctx, out); err != nil {
		t.Fatalf("reading result: %+v", err)
	}
	if err := out.ReadMessageEnd(ctx); err != nil {
		t.Fatalf("reading reply end: %+v", err)
	}
	if result.Success == nil || *result.Success != ResultOK {
		t.Fatalf("expected OK result but got %+v", result.Success)
	}
}

func TestProcessorResultCode(t *testing.T) {
	ctx := context.Background()
	_, in := newProtocol()
	_, out := newProtocol()

	writeCall(t, in, nil)

	handler := &recorderHandler{rc: ResultTryLater}
	proc := NewProcessor(handler)
	if ok, perr := proc.Process(ctx, in, out); !ok {
		t.Fatalf("expected ok but got error: %+v", perr)
	}

	if _, _, _, err := out.ReadMessageBegin(ctx); err != nil {
		t.Fatalf("reading reply begin: %+v", err)
	}
	var result logResult
	if err := result.Read(ctx, out); err != nil {
		t.Fatalf("reading result: %+v", err)
	}
	if result.Success == nil || *result.Success != ResultTryLater {
		t.Fatalf("expected TRY_LATER result but got %+v", result.Success)
	}
}

func TestProcessorHandlerError(t *testing.T) {
	ctx := context.Background()
	_, in := newProtocol()
	_, out := newProtocol()

	writeCall(t, in, []*LogEntry{{Category: "app", Message: "hi"}})

	handler := &recorderHandler{err: errors.New("out of space")}
	proc := NewProcessor(handler)
	ok, perr := proc.Process(ctx, in, out)
	if !ok {
		t.Fatal("expected ok for a handled call")
	}
	if perr == nil {
		t.Fatal("expected an error from the handler")
	}

	_, typeID, _, err := out.ReadMessageBegin(ctx)
	if err != nil {
		t.Fatalf("reading reply begin: %+v", err)
	}
	if typeID != thrift.EXCEPTION {
		t.Fatalf("expected EXCEPTION reply but got %v", typeID)
	}
}

func TestProcessorUnknownMethod(t *testing.T) {
	ctx := context.Background()
	_, in := newProtocol()
	_, out := newProtocol()

	if err := in.WriteMessageBegin(ctx, "Ping", thrift.CALL, 7); err != nil {
		t.Fatalf("writing message begin: %+v", err)
	}
	if err := in.WriteStructBegin(ctx, "Ping_args"); err != nil {
		t.Fatalf("writing struct begin: %+v", err)
	}
	if err := in.WriteFieldStop(ctx); err != nil {
		t.Fatalf("writing field stop: %+v", err)
	}
	if err := in.WriteStructEnd(ctx); err != nil {
		t.Fatalf("writing struct end: %+v", err)
	}
	if err := in.WriteMessageEnd(ctx); err != nil {
		t.Fatalf("writing message end: %+v", err)
	}
	if err := in.Flush(ctx); err != nil {
		t.Fatalf("flushing call: %+v", err)
	}

	proc := NewProcessor(&recorderHandler{})
	ok, perr := proc.Process(ctx, in, out)
	if ok {
		t.Fatal("expected not ok for an unknown method")
	}
	if perr == nil {
		t.Fatal("expected an exception for an unknown method")
	}

	name, typeID, seqID, err := out.ReadMessageBegin(ctx)
	if err != nil {
		t.Fatalf("reading reply begin: %+v", err)
	}
	if name != "Ping" || typeID != thrift.EXCEPTION || seqID != 7 {
		t.Fatalf("unexpected reply header: %s %v %d", name, typeID, seqID)
	}
}

func TestResultCodeString(t *testing.T) {
	if ResultOK.String() != "OK" {
		t.Fatalf("expected OK but got %s", ResultOK)
	}
	if ResultTryLater.String() != "TRY_LATER" {
		t.Fatalf("expected TRY_LATER but got %s", ResultTryLater)
	}
}

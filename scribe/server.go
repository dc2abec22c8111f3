package scribe

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// Processor dispatches incoming service calls to a Scribe implementation.
// It implements thrift.TProcessor and can be driven by any thrift server
// loop over a framed transport.
type Processor struct {
	handler      Scribe
	processorMap map[string]thrift.TProcessorFunction
}

// NewProcessor returns a Processor calling handler for each submitted batch.
func NewProcessor(handler Scribe) *Processor {
	p := &Processor{
		handler:      handler,
		processorMap: make(map[string]thrift.TProcessorFunction),
	}
	p.AddToProcessorMap("Log", &logProcessor{handler: handler})
	return p
}

// ProcessorMap implements thrift.TProcessor.
func (p *Processor) ProcessorMap() map[string]thrift.TProcessorFunction {
	return p.processorMap
}

// AddToProcessorMap implements thrift.TProcessor.
func (p *Processor) AddToProcessorMap(name string, fn thrift.TProcessorFunction) {
	p.processorMap[name] = fn
}

// Process reads one call from iprot, dispatches it, and writes the reply to
// oprot. It returns false when the connection should be torn down.
func (p *Processor) Process(ctx context.Context, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	name, _, seqID, err := iprot.ReadMessageBegin(ctx)
	if err != nil {
		return false, thrift.WrapTException(err)
	}
	if fn, ok := p.processorMap[name]; ok {
		return fn.Process(ctx, seqID, iprot, oprot)
	}

	if err := iprot.Skip(ctx, thrift.STRUCT); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := iprot.ReadMessageEnd(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}
	x := thrift.NewTApplicationException(thrift.UNKNOWN_METHOD, "Unknown function "+name)
	if err := writeException(ctx, oprot, name, seqID, x); err != nil {
		return false, thrift.WrapTException(err)
	}
	return false, x
}

type logProcessor struct {
	handler Scribe
}

func (p *logProcessor) Process(ctx context.Context, seqID int32, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	args := logArgs{}
	if err := args.Read(ctx, iprot); err != nil {
		_ = iprot.ReadMessageEnd(ctx)
		x := thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
		if werr := writeException(ctx, oprot, "Log", seqID, x); werr != nil {
			return false, thrift.WrapTException(werr)
		}
		return false, thrift.WrapTException(err)
	}
	if err := iprot.ReadMessageEnd(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}

	rc, err := p.handler.Log(ctx, args.Messages)
	if err != nil {
		x := thrift.NewTApplicationException(thrift.INTERNAL_ERROR,
			"Internal error processing Log: "+err.Error())
		if werr := writeException(ctx, oprot, "Log", seqID, x); werr != nil {
			return true, thrift.WrapTException(werr)
		}
		return true, thrift.WrapTException(err)
	}

	result := logResult{Success: &rc}
	if err := oprot.WriteMessageBegin(ctx, "Log", thrift.REPLY, seqID); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := result.Write(ctx, oprot); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := oprot.WriteMessageEnd(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := oprot.Flush(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}
	return true, nil
}

func writeException(ctx context.Context, oprot thrift.TProtocol, name string, seqID int32, x thrift.TApplicationException) error {
	if err := oprot.WriteMessageBegin(ctx, name, thrift.EXCEPTION, seqID); err != nil {
		return err
	}
	if err := x.Write(ctx, oprot); err != nil {
		return err
	}
	if err := oprot.WriteMessageEnd(ctx); err != nil {
		return err
	}
	return oprot.Flush(ctx)
}

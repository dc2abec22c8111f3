package appender

import (
	"context"
	"log/slog"
	"strings"
)

// Layout renders a log record to the message string submitted to the remote
// server. The record passed to Format already carries any attributes added
// through Handler.WithAttrs, with group-qualified keys.
type Layout interface {
	Format(r slog.Record) (string, error)
}

// LayoutFunc adapts a function to Layout.
type LayoutFunc func(slog.Record) (string, error)

// Format implements Layout
func (f LayoutFunc) Format(r slog.Record) (string, error) { return f(r) }

// TextLayout renders records as "LEVEL message key=value ...".
type TextLayout struct{}

// Format implements Layout
func (TextLayout) Format(r slog.Record) (string, error) {
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value.Resolve().String())
		return true
	})
	return sb.String(), nil
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Level is the minimum record level that will be forwarded. The
	// default is slog.LevelInfo.
	Level slog.Leveler

	// Layout renders records. The default is TextLayout.
	Layout Layout
}

// Handler adapts an Appender to slog.Handler, making the appender loadable
// as a sink for the standard structured logging framework. Every record is
// rendered through the layout and forwarded synchronously as a single
// entry; failures surface through the appender's error sink.
type Handler struct {
	app    *Appender
	level  slog.Leveler
	layout Layout
	attrs  []slog.Attr // keys already group-qualified
	group  string      // dotted prefix for subsequent keys
}

// NewHandler returns a Handler forwarding records through app.
func NewHandler(app *Appender, opts *HandlerOptions) *Handler {
	h := &Handler{
		app:    app,
		level:  slog.LevelInfo,
		layout: TextLayout{},
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		if opts.Layout != nil {
			h.layout = opts.Layout
		}
	}
	return h
}

// Enabled implements slog.Handler
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Rendering errors are returned to the
// framework; submission failures go to the appender's error sink.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	rec := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	rec.AddAttrs(h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttrs(h.qualify(a))
		return true
	})

	msg, err := h.layout.Format(rec)
	if err != nil {
		return err
	}
	h.app.Append(msg)
	return nil
}

// WithAttrs implements slog.Handler
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return &h2
}

// WithGroup implements slog.Handler
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h2.group == "" {
		h2.group = name
	} else {
		h2.group += "." + name
	}
	return &h2
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

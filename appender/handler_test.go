package appender

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, opts *HandlerOptions) (*slog.Logger, func() []string) {
	t.Helper()
	srv, conf := newTestServer(t)

	app := New(conf).WithErrorSink(NewMockSink())
	require.NoError(t, app.Activate())
	t.Cleanup(func() { app.Close() })

	messages := func() []string {
		var out []string
		for _, entry := range srv.Entries() {
			out = append(out, entry.Message)
		}
		return out
	}
	return slog.New(NewHandler(app, opts)), messages
}

func TestHandlerForwards(t *testing.T) {
	logger, messages := newTestLogger(t, nil)

	logger.Info("hello", "k", "v")

	got := messages()
	require.Len(t, got, 1)
	assert.Equal(t, "INFO hello k=v", got[0])
}

func TestHandlerLevel(t *testing.T) {
	logger, messages := newTestLogger(t, &HandlerOptions{Level: slog.LevelWarn})

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Warn("loud enough")
	logger.Error("boom")

	got := messages()
	require.Len(t, got, 2)
	assert.Equal(t, "WARN loud enough", got[0])
	assert.Equal(t, "ERROR boom", got[1])
}

func TestHandlerWithAttrsGroups(t *testing.T) {
	logger, messages := newTestLogger(t, nil)

	logger = logger.With("a", 1).WithGroup("req")
	logger.Info("m", "id", "x", "n", 2)

	got := messages()
	require.Len(t, got, 1)
	assert.Equal(t, "INFO m a=1 req.id=x req.n=2", got[0])
}

func TestHandlerCustomLayout(t *testing.T) {
	layout := LayoutFunc(func(r slog.Record) (string, error) {
		return ">> " + r.Message, nil
	})
	logger, messages := newTestLogger(t, &HandlerOptions{Layout: layout})

	logger.Info("custom", "ignored", true)

	got := messages()
	require.Len(t, got, 1)
	assert.Equal(t, ">> custom", got[0])
}

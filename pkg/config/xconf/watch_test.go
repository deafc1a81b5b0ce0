package xconf

import (
	"bytes"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xambient/pkg/observability/xlog"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "app.yaml", demoYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	reloaded := make(chan error, 8)
	w, err := Watch(cfg, func(_ Config, err error) {
		reloaded <- err
	}, WithDebounce(20*time.Millisecond), WithWatchLogger(logger))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("未收到重载回调")
	}
	assert.Equal(t, "error", cfg.Client().String("log.level"))

	require.NoError(t, w.Stop())
	assert.Contains(t, buf.String(), "config reloaded")
}

func TestWatch_Errors(t *testing.T) {
	fromBytes, err := NewFromBytes([]byte(demoYAML), FormatYAML)
	require.NoError(t, err)
	_, err = Watch(fromBytes, nil)
	assert.ErrorIs(t, err, ErrNotFromFile)

	_, err = Watch(stubConfig{fromBytes}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	cfg, err := New(writeFile(t, "app.yaml", demoYAML))
	require.NoError(t, err)

	var calls atomic.Int32
	w, err := Watch(cfg, func(Config, error) { calls.Add(1) })
	require.NoError(t, err)
	w.StartAsync()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	w.StartAsync()
	assert.Zero(t, calls.Load())
}

// stubConfig 包装 Config 以模拟外部实现。
type stubConfig struct {
	Config
}

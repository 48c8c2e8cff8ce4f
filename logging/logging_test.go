package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_File(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.File = true
	cfg.Dir = dir

	logger, closeFn, err := Setup(cfg)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, "natbrowser.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "k=v")
	assert.Same(t, logger, L())
}

func TestFrom(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := With(context.Background(), logger)
	assert.Same(t, logger, From(ctx))
	assert.Same(t, L(), From(context.Background()))

	enriched := WithAttrs(ctx, "step", 1)
	assert.NotSame(t, logger, From(enriched))
}

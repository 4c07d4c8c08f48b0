package server

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type fakePurger struct {
	calls   atomic.Int32
	removed int64
	err     error
}

func (f *fakePurger) PurgeExpiredTokens(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return f.removed, f.err
}

func newBufferLogger() (logging.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.InfoLevel,
	)
	return logging.NewZapLogger(zap.New(core)), buf
}

func runCleanerFor(t *testing.T, p *fakePurger, log logging.Logger) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runTokenCleaner(ctx, p, 5*time.Millisecond, log) }()

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop after cancel")
	}
}

func TestTokenCleaner_LogsRemoved(t *testing.T) {
	log, buf := newBufferLogger()
	runCleanerFor(t, &fakePurger{removed: 3}, log)

	assert.Contains(t, buf.String(), "purged expired refresh tokens")
	assert.Contains(t, buf.String(), `"removed":3`)
}

func TestTokenCleaner_ContinuesOnError(t *testing.T) {
	log, buf := newBufferLogger()
	runCleanerFor(t, &fakePurger{err: errors.New("db down")}, log)

	assert.Contains(t, buf.String(), "failed to purge expired refresh tokens")
	assert.Contains(t, buf.String(), "db down")
}

func TestTokenCleaner_QuietWhenNothingRemoved(t *testing.T) {
	log, buf := newBufferLogger()
	runCleanerFor(t, &fakePurger{}, log)

	assert.Empty(t, buf.String())
}

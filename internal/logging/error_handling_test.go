package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorCloser struct {
	err error
}

func (c *errorCloser) Close() error {
	return c.err
}

type errorTx struct {
	err error
}

func (tx *errorTx) Rollback() error {
	return tx.err
}

func TestSafeCloseWithLogging(t *testing.T) {
	t.Run("tolerates nil closer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(nil, logger, "noop")
		assert.Empty(t, buf.String())
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})
}

func TestSafeRollbackWithLogging(t *testing.T) {
	t.Run("ignores already-finished transactions", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &errorTx{err: errors.New("sql: transaction has already been committed or rolled back")}
		SafeRollbackWithLogging(tx, logger, "insert_run")

		assert.Empty(t, buf.String())
	})

	t.Run("logs unexpected rollback errors", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&errorTx{err: assert.AnError}, logger, "insert_run")

		output := buf.String()
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"operation":"insert_run"`)
	})
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("keeps original error", func(t *testing.T) {
		original := assert.AnError
		err := original

		HandleDeferredError(&err, func() error { return errors.New("cleanup failed") }, nil, "close_db")
		assert.Equal(t, original, err)
	})

	t.Run("promotes deferred error when original is nil", func(t *testing.T) {
		var err error

		HandleDeferredError(&err, func() error { return errors.New("cleanup failed") }, nil, "close_db")
		assert.ErrorContains(t, err, "close_db failed")
		assert.ErrorContains(t, err, "cleanup failed")
	})
}

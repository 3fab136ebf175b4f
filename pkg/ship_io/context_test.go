package ship_io

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewContext(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	rc := NewContext(context.Background(), "ship")
	require.NotNil(t, rc.Ctx)
	require.NotNil(t, rc.Log)
	assert.Equal(t, "ship", rc.Command)
	assert.Equal(t, "ship_io", rc.Component)
	assert.NotNil(t, rc.Attributes)
	assert.False(t, rc.Timestamp.IsZero())
}

func TestHandlePanic(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))
	rc := NewContext(context.Background(), "panic")

	run := func() (err error) {
		defer rc.HandlePanic(&err)
		panic("index exploded")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index exploded")
}

func TestClassifyError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", classifyError(nil))
	assert.Equal(t, "user", classifyError(ship_err.NewExpectedError(errors.New("no changes"))))
	assert.Equal(t, "storage", classifyError(ship_err.NewStorageError("scan", nil)))
	assert.Equal(t, "system", classifyError(errors.New("other")))
}

func TestEnd_AcceptsAllOutcomes(t *testing.T) {
	logger.SetLogger(zaptest.NewLogger(t))

	for _, err := range []error{nil, errors.New("boom"), ship_err.NewExpectedError(errors.New("nothing to do"))} {
		rc := NewContext(context.Background(), "end")
		rc.Attributes["files"] = "2"
		e := err
		assert.NotPanics(t, func() { rc.End(&e) })
	}
}

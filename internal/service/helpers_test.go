package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors_ListsEveryWarning(t *testing.T) {
	err := formatValidationErrors([]error{
		errors.New(`employee "a": salary "n/a" is not a number`),
		errors.New(`employee "b": level 14 out of range`),
	})
	require.Error(t, err)
	assert.Equal(t, "roster validation failed (2 warnings):\n"+
		"  - employee \"a\": salary \"n/a\" is not a number\n"+
		"  - employee \"b\": level 14 out of range", err.Error())
}

func TestObserve_ReportsNamedErrorResult(t *testing.T) {
	obs := &recordingObserver{}
	boom := errors.New("boom")

	run := func() (err error) {
		defer observe(context.Background(), obs, "remove-employee", map[string]any{"id": "x"})(&err)
		return boom
	}
	require.ErrorIs(t, run(), boom)

	ev := obs.last()
	assert.Equal(t, "remove-employee", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, boom)
	assert.Equal(t, "x", ev.Fields["id"])
	assert.False(t, ev.StartedAt.IsZero())
}

func TestObserve_NilErrorPointerIsSuccess(t *testing.T) {
	obs := &recordingObserver{}
	observe(context.Background(), obs, "rebuild-chart", nil)(nil)
	assert.True(t, obs.last().Success)
}

func TestUseCaseObserverOrNoop_SkipsNil(t *testing.T) {
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}

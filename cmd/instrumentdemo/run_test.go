package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/curtisnewbie/instrument/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	instrument.SetDebug(true)
	t.Cleanup(instrument.ResetDebug)

	const delay = 40 * time.Millisecond
	rows, err := runDemo(context.Background(), delay)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "42", rows[0].Result)
	assert.True(t, rows[0].Logged)

	assert.Equal(t, "done", rows[1].Result)
	assert.GreaterOrEqual(t, rows[1].Elapsed, delay)

	assert.Equal(t, "lazy", rows[2].Result)
	assert.True(t, rows[2].Logged)

	assert.ErrorIs(t, rows[3].Err, errSimulated)
	assert.True(t, rows[3].Logged)

	buf := &bytes.Buffer{}
	require.NoError(t, printRows(buf, rows))
	assert.Contains(t, buf.String(), "done")
	t.Log("\n" + buf.String())
}

func TestRunDemoDebugOff(t *testing.T) {
	instrument.SetDebug(false)
	t.Cleanup(instrument.ResetDebug)

	rows, err := runDemo(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "lazy", rows[2].Result)
	assert.False(t, rows[2].Logged, "debug gated task is not instrumented")
	assert.True(t, rows[1].Logged)
}

func TestRunDemoTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := runDemo(ctx, time.Hour)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunCmd(t *testing.T) {
	t.Cleanup(func() {
		instrument.ResetDebug()
		instrument.SetDefaultSink(nil)
	})

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"run", "--delay", "5ms", "instrument.debug=false"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "immediate")
	assert.False(t, instrument.Debug())
}

package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes []string
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestDeferredWriter_FlushLineByLine(t *testing.T) {
	var d DeferredWriter
	_, err := d.Write([]byte("{\"a\":1}\n{\"b\":2}\n\n"))
	require.NoError(t, err)
	_, err = d.Write([]byte("{\"c\":3}"))
	require.NoError(t, err)

	var out recordingWriter
	require.NoError(t, d.Flush(&out))

	assert.Equal(t, []string{"{\"a\":1}\n", "{\"b\":2}\n", "{\"c\":3}\n"}, out.writes)
	assert.Zero(t, d.Len())
}

func TestDeferredWriter_FlushEmpty(t *testing.T) {
	var d DeferredWriter
	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String())
}

func TestDeferredWriter_FlushError(t *testing.T) {
	var d DeferredWriter
	_, _ = d.Write([]byte("line\n"))
	assert.Error(t, d.Flush(failingWriter{}))
}

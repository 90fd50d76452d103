package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	out, err := PNG("https://example.edu/attendance/t1/A", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))

	_, err = PNG("", 128)
	assert.Error(t, err)
}

package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/scanmark/internal/buffer"
)

func TestBufferWrites(t *testing.T) {
	var b buffer.Buffer
	assert.Equal(t, 0, b.Len())

	n, err := b.Write([]byte("hello"))
	assert.Equal(t, 5, n)
	assert.NoError(t, err)

	err = b.WriteByte(' ')
	assert.NoError(t, err)

	n, err = b.WriteString("world")
	assert.Equal(t, 5, n)
	assert.NoError(t, err)

	assert.Equal(t, "hello world", b.String())
	assert.Equal(t, 11, b.Len())
	assert.Equal(t, []byte("hello world"), b.Bytes())
}

func TestBufferReset(t *testing.T) {
	var b buffer.Buffer
	b.WriteString("stale data")
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.String())
}

func TestBufferTruncate(t *testing.T) {
	var b buffer.Buffer
	b.WriteString("hello world")
	b.Truncate(5)
	assert.Equal(t, "hello", b.String())

	assert.Panics(t, func() { b.Truncate(-1) })
	assert.Panics(t, func() { b.Truncate(100) })
}

func TestBufferTrimRight(t *testing.T) {
	var b buffer.Buffer
	b.WriteString("trailing   ")
	n := b.TrimRight(' ')
	assert.Equal(t, 3, n)
	assert.Equal(t, "trailing", b.String())

	n = b.TrimRight(' ')
	assert.Equal(t, 0, n)
}

func TestBufferLast(t *testing.T) {
	var b buffer.Buffer
	_, ok := b.Last()
	assert.False(t, ok)

	b.WriteString("abc")
	c, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, byte('c'), c)
}

func TestBufferGrow(t *testing.T) {
	var b buffer.Buffer
	b.Grow(64)
	b.WriteString("fits without reallocating visibly")
	assert.Equal(t, "fits without reallocating visibly", b.String())
}

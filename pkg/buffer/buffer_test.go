package buffer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferAppendAndFinish(t *testing.T) {
	b := New(0)
	b.Append("<body>")
	b.AppendBytes([]byte("Hello"))
	b.AppendByte(' ')
	_, err := b.WriteString("world!")
	require.NoError(t, err)
	require.NoError(t, b.WriteByte('<'))
	_, err = b.Write([]byte("/body>"))
	require.NoError(t, err)

	assert.Equal(t, "<body>Hello world!</body>", b.Finish())
	assert.Equal(t, len("<body>Hello world!</body>"), b.Len())
}

func TestBufferBytesIsCopy(t *testing.T) {
	b := New(16)
	b.Append("abc")
	out := b.Bytes()
	out[0] = 'x'
	assert.Equal(t, "abc", b.Finish())
}

func TestBufferGrow(t *testing.T) {
	b := New(3)
	assert.Equal(t, 4, b.Cap())

	b.Append(strings.Repeat("a", 10))
	assert.GreaterOrEqual(t, b.Cap(), 10)

	big := New(0)
	big.Append(strings.Repeat("b", DefaultBufferSize+1))
	assert.Equal(t, 2*DefaultBufferSize, big.Cap())

	huge := New(bufferGrowThreshold)
	huge.Append(strings.Repeat("c", bufferGrowThreshold+1))
	assert.GreaterOrEqual(t, huge.Cap(), bufferGrowThreshold+1)
	assert.Equal(t, bufferGrowThreshold+1, huge.Len())

	g := New(0)
	g.Grow(100)
	assert.GreaterOrEqual(t, g.Cap(), 100)
	assert.Equal(t, 0, g.Len())
}

func TestBufferResetAndWriteTo(t *testing.T) {
	b := New(8)
	b.Append("payload")
	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())

	capBefore := b.Cap()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, capBefore, b.Cap())
	assert.Equal(t, "", b.Finish())
}

func TestCeilToPowerOfTwo(t *testing.T) {
	assert.Equal(t, 0, ceilToPowerOfTwo(0))
	assert.Equal(t, 1, ceilToPowerOfTwo(1))
	assert.Equal(t, 8, ceilToPowerOfTwo(5))
	assert.Equal(t, 1024, ceilToPowerOfTwo(1024))
}

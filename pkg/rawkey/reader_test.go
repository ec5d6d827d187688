package rawkey

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	t.Parallel()

	s := NewScript("ab")
	assert.Equal(t, 2, s.Remaining())

	k, err := s.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), k)

	k, err = s.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), k)
	assert.Equal(t, 0, s.Remaining())

	k, err = s.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, KeyEOF, k)
}

func TestReader_Pipe(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()

	r := New(pr)
	assert.False(t, r.IsTerminal(), "a pipe is not a terminal")

	_, err = pw.Write([]byte("x\n"))
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	k, err := r.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), k)

	k, err = r.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), k)

	t.Run("end_of_input_yields_sentinel", func(t *testing.T) {
		k, err := r.ReadKey()
		assert.Error(t, err)
		assert.Equal(t, KeyEOF, k)
	})
}

func TestReader_RestoreWithoutActiveRead(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	r := New(pr)
	assert.NoError(t, r.Restore())
	assert.NoError(t, r.Restore(), "Restore must be idempotent")
}

func TestKeyReaderImplementations(t *testing.T) {
	var _ KeyReader = (*Reader)(nil)
	var _ KeyReader = (*Script)(nil)
}

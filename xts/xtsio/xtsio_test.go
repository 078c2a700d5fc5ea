package xtsio_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvdlvd/xtsflow/xts/xtsio"
)

// bytesBuffer is a minimal in-memory io.ReaderAt/io.WriterAt, grounded
// on the teacher's own bytesBuffer test helper in xts_test.go.
type bytesBuffer struct {
	mu   sync.Mutex
	data []byte
}

func newBytesBuffer(size int) *bytesBuffer {
	return &bytesBuffer{data: make([]byte, size)}
}

func (b *bytesBuffer) ReadAt(p []byte, off int64) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if off >= int64(len(b.data)) {
		return 0, nil
	}
	n := copy(p, b.data[off:])
	return n, nil
}

func (b *bytesBuffer) WriteAt(p []byte, off int64) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	end := off + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[off:], p)
	return n, nil
}

func TestReaderWriterRoundtrip(t *testing.T) {
	keyData := bytes.Repeat([]byte{0x11}, 16)
	keyTweak := bytes.Repeat([]byte{0x22}, 16)
	const sectorSize = 512
	const sectors = 4

	backing := newBytesBuffer(sectorSize * sectors)

	w, err := xtsio.NewWriterAt(backing, keyData, keyTweak, sectorSize)
	require.NoError(t, err)

	plaintext := bytes.Repeat([]byte{0x5A}, sectorSize*sectors)
	n, err := w.WriteAt(plaintext, 0)
	require.NoError(t, err)
	assert.Equal(t, len(plaintext), n)

	assert.NotEqual(t, plaintext, backing.data, "backing store must hold ciphertext, not plaintext")

	r, err := xtsio.NewReaderAt(backing, keyData, keyTweak, sectorSize)
	require.NoError(t, err)

	got := make([]byte, sectorSize*sectors)
	n, err = r.ReadAt(got, 0)
	require.NoError(t, err)
	assert.Equal(t, len(plaintext), n)
	assert.Equal(t, plaintext, got)
}

func TestReaderWriterSectorIndependence(t *testing.T) {
	keyData := bytes.Repeat([]byte{0x33}, 32)
	keyTweak := bytes.Repeat([]byte{0x44}, 32)
	const sectorSize = 128

	backing := newBytesBuffer(sectorSize * 2)
	w, err := xtsio.NewWriterAt(backing, keyData, keyTweak, sectorSize)
	require.NoError(t, err)

	sector0 := bytes.Repeat([]byte{0x01}, sectorSize)
	sector1 := bytes.Repeat([]byte{0x01}, sectorSize) // identical plaintext, different sector

	_, err = w.WriteAt(sector0, 0)
	require.NoError(t, err)
	_, err = w.WriteAt(sector1, sectorSize)
	require.NoError(t, err)

	assert.NotEqual(t, backing.data[:sectorSize], backing.data[sectorSize:], "identical plaintext in different sectors must produce different ciphertext")
}

func TestWriteAtRejectsUnaligned(t *testing.T) {
	keyData := bytes.Repeat([]byte{0x01}, 16)
	keyTweak := bytes.Repeat([]byte{0x02}, 16)
	backing := newBytesBuffer(1024)
	w, err := xtsio.NewWriterAt(backing, keyData, keyTweak, 256)
	require.NoError(t, err)

	_, err = w.WriteAt(make([]byte, 256), 10)
	assert.Error(t, err)

	_, err = w.WriteAt(make([]byte, 100), 0)
	assert.Error(t, err)

	_, err = w.WriteAt(make([]byte, 256), -1)
	assert.Error(t, err)
}

func TestReadAtRejectsUnaligned(t *testing.T) {
	keyData := bytes.Repeat([]byte{0x01}, 16)
	keyTweak := bytes.Repeat([]byte{0x02}, 16)
	backing := newBytesBuffer(1024)
	r, err := xtsio.NewReaderAt(backing, keyData, keyTweak, 256)
	require.NoError(t, err)

	_, err = r.ReadAt(make([]byte, 256), 10)
	assert.Error(t, err)

	_, err = r.ReadAt(make([]byte, 100), 0)
	assert.Error(t, err)
}

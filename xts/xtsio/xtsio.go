// Package xtsio adapts the xts package's streaming cipher to Go's
// io.ReaderAt/io.WriterAt interfaces, sector by sector, the way the
// teacher's xts.ReaderAt/xts.WriterAt adapt a whole-sector cipher to
// disk-image I/O — generalized here to sector sizes that are not
// multiples of 16 bytes, by driving an xts.Cipher configured in
// Independent mode once per sector instead of calling a whole-sector
// Encrypt/Decrypt pair.
package xtsio

import (
	"fmt"
	"io"

	"github.com/lvdlvd/xtsflow/xts"
)

// ReaderAt decrypts data read from an underlying io.ReaderAt, one
// sector at a time.
type ReaderAt struct {
	r          io.ReaderAt
	params     xts.CipherParameters
	sectorSize int
}

// NewReaderAt wraps r, decrypting every sector read through it with
// the given key material and sector size. ReaderAt always drives the
// cipher in Independent mode, since each sector is read (and thus decrypted) independently of its
// neighbors.
func NewReaderAt(r io.ReaderAt, keyData, keyTweak []byte, sectorSize int) (*ReaderAt, error) {
	params, err := xts.NewParameters(xts.Independent, keyData, keyTweak, sectorSize, xts.SectorIndexFromUint64(0))
	if err != nil {
		return nil, fmt.Errorf("xtsio: new reader: %w", err)
	}
	return &ReaderAt{r: r, params: params, sectorSize: sectorSize}, nil
}

// ReadAt reads and decrypts len(p) bytes starting at byte offset off,
// which must be sector-aligned; p's length must be a multiple of the
// sector size. It satisfies io.ReaderAt.
func (a *ReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("xtsio: negative offset")
	}
	if off%int64(a.sectorSize) != 0 {
		return 0, fmt.Errorf("xtsio: read offset %d not sector-aligned to %d", off, a.sectorSize)
	}
	if len(p)%a.sectorSize != 0 {
		return 0, fmt.Errorf("xtsio: read length %d not a multiple of sector size %d", len(p), a.sectorSize)
	}

	raw := make([]byte, len(p))
	n, err := a.r.ReadAt(raw, off)
	if err != nil && err != io.EOF {
		return 0, err
	}
	readErr := err

	sectorsRead := n / a.sectorSize
	firstSector := uint64(off / int64(a.sectorSize))

	scratch := make([]byte, xts.OutputSize(a.sectorSize))
	for i := 0; i < sectorsRead; i++ {
		sector := firstSector + uint64(i)
		params := a.params
		params.SectorIndex = xts.SectorIndexFromUint64(sector)

		c, initErr := xts.NewCipher(false, params)
		if initErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, initErr)
		}
		chunk := raw[i*a.sectorSize : (i+1)*a.sectorSize]
		written, procErr := c.Process(scratch, chunk)
		if procErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, procErr)
		}
		final, finErr := c.Finalize(scratch[written:])
		if finErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, finErr)
		}
		copy(p[i*a.sectorSize:(i+1)*a.sectorSize], scratch[:written+final])
	}

	return sectorsRead * a.sectorSize, readErr
}

// WriterAt encrypts data before writing it to an underlying
// io.WriterAt, one sector at a time.
type WriterAt struct {
	w          io.WriterAt
	params     xts.CipherParameters
	sectorSize int
}

// NewWriterAt wraps w, encrypting every sector written through it.
// Like ReaderAt, it always drives the cipher in Independent mode.
func NewWriterAt(w io.WriterAt, keyData, keyTweak []byte, sectorSize int) (*WriterAt, error) {
	params, err := xts.NewParameters(xts.Independent, keyData, keyTweak, sectorSize, xts.SectorIndexFromUint64(0))
	if err != nil {
		return nil, fmt.Errorf("xtsio: new writer: %w", err)
	}
	return &WriterAt{w: w, params: params, sectorSize: sectorSize}, nil
}

// WriteAt encrypts p and writes it starting at byte offset off, which
// must be sector-aligned; p's length must be a multiple of the sector
// size. Partial-sector writes would require a read-modify-write cycle
// this package does not implement, the same boundary the teacher's own
// WriterAt documents and leaves to the caller.
func (a *WriterAt) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("xtsio: negative offset")
	}
	if off%int64(a.sectorSize) != 0 {
		return 0, fmt.Errorf("xtsio: write offset %d not sector-aligned to %d", off, a.sectorSize)
	}
	if len(p)%a.sectorSize != 0 {
		return 0, fmt.Errorf("xtsio: write length %d not a multiple of sector size %d", len(p), a.sectorSize)
	}

	sectors := len(p) / a.sectorSize
	firstSector := uint64(off / int64(a.sectorSize))

	encrypted := make([]byte, len(p))
	scratch := make([]byte, xts.OutputSize(a.sectorSize))
	for i := 0; i < sectors; i++ {
		sector := firstSector + uint64(i)
		params := a.params
		params.SectorIndex = xts.SectorIndexFromUint64(sector)

		c, initErr := xts.NewCipher(true, params)
		if initErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, initErr)
		}
		chunk := p[i*a.sectorSize : (i+1)*a.sectorSize]
		written, procErr := c.Process(scratch, chunk)
		if procErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, procErr)
		}
		final, finErr := c.Finalize(scratch[written:])
		if finErr != nil {
			return i * a.sectorSize, fmt.Errorf("xtsio: sector %d: %w", sector, finErr)
		}
		copy(encrypted[i*a.sectorSize:(i+1)*a.sectorSize], scratch[:written+final])
	}

	n, err := a.w.WriteAt(encrypted, off)
	return n, err
}

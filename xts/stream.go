package xts

import "fmt"

// OutputSize returns an upper bound on the number of bytes a single
// Process call may write, given it is handed pendingInputLen bytes of
// input. Input and output track each other roughly 1:1, but a single
// byte can flush both a withheld block from earlier in the data unit
// and the block it completes in the same call, if that byte happens to
// land exactly on a sector boundary — so the margin is two blocks, not
// one.
func OutputSize(pendingInputLen int) int {
	return pendingInputLen + 2*blockSize
}

// Process consumes all of src, writing transformed bytes to dst, and
// returns the number of bytes written. len(dst) must be at least
// OutputSize(len(src)) or Process fails without consuming anything.
//
// Process may be called any number of times between Init and Finalize,
// with arbitrarily sized (including zero-length or sub-block) slices;
// the cipher carries forward whatever partial block state is needed
// across calls.
func (c *Cipher) Process(dst, src []byte) (int, error) {
	if err := c.checkActive(); err != nil {
		return 0, fmt.Errorf("xts: process: %w", err)
	}
	if len(dst) < OutputSize(len(src)) {
		return 0, fmt.Errorf("xts: process: need up to %d bytes of output, have %d: %w", OutputSize(len(src)), len(dst), ErrOutputBufferTooSmall)
	}
	c.st = stateProcessing

	written := 0
	for _, b := range src {
		n, err := c.consumeByte(dst[written:], b)
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// ProcessByte is a convenience wrapper around Process for callers
// driving the cipher one byte at a time; it returns the (possibly
// empty) slice of bytes emitted for that byte.
func (c *Cipher) ProcessByte(b byte) ([]byte, error) {
	var buf [1 + 2*blockSize]byte // OutputSize(1)
	n, err := c.Process(buf[:], []byte{b})
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// consumeByte folds one byte of input into the cipher's state,
// emitting whatever that byte completes. Ordinarily that is at most
// one flushed block, but when this byte also lands on a Continuous-
// mode sector boundary whose length is a multiple of the block size,
// it flushes both the block it completes (via promoteBlock) and the
// block that was already withheld for this data unit (via
// finishAndRollover) — up to 2*blockSize bytes in a single call.
func (c *Cipher) consumeByte(dst []byte, b byte) (int, error) {
	c.frag[c.fragLen] = b
	c.fragLen++
	c.sectorOffset++

	written := 0
	// A completed ordinary block must be promoted before checking for
	// sector completion: if sector_size is a multiple of the block
	// size, the byte that completes the final block is the very same
	// byte that reaches sector_offset == sector_size, and finishDataUnit
	// needs fragLen already reset to 0 (not left at blockSize) to take
	// its "aligned, no ciphertext stealing" branch correctly.
	if c.fragLen == blockSize {
		n, err := c.promoteBlock(dst)
		if err != nil {
			return 0, err
		}
		written = n
	}

	if c.params.Mode == Continuous && c.sectorOffset == c.params.SectorSize {
		n, err := c.finishAndRollover(dst[written:])
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// promoteBlock is called once c.frag holds a complete, ordinary
// (non-final) block. If an older block is already withheld, it can no
// longer be the sector's penultimate block — a full block has been
// consumed after it — so it is flushed now. The newly completed block
// becomes the new withheld block, since it might yet turn out to
// precede a short final tail.
func (c *Cipher) promoteBlock(dst []byte) (int, error) {
	written := 0
	if c.haveWithheld {
		c.kernelTransform(dst[:blockSize], c.withheld[:], c.tweakWithheld[:])
		written = blockSize
	}

	c.withheld = c.frag
	c.tweakWithheld = c.currentTweak
	c.haveWithheld = true
	advance(&c.currentTweak)
	c.fragLen = 0

	return written, nil
}

// finishAndRollover finishes the current data unit (ordinary flush or
// ciphertext stealing, whichever §4.4.2–§4.4.4 calls for) and, in
// Continuous mode, rolls over into the next sector so the remaining
// input (if this was called mid-Process) continues to be consumed
// correctly.
func (c *Cipher) finishAndRollover(dst []byte) (int, error) {
	n, err := c.finishDataUnit(dst)
	if err != nil {
		return 0, err
	}

	c.currentSector = c.currentSector.Next()
	c.currentTweak = initialTweak(c.aesTweak, c.currentSector)
	c.sectorOffset = 0
	c.haveWithheld = false
	c.fragLen = 0

	return n, nil
}

// finishDataUnit emits whatever is still buffered for the current data
// unit: nothing, if the unit ended exactly on a block boundary with no
// withheld block; a plain transformed block, if a withheld block
// remains and the unit's length is a multiple of the block size; or a
// ciphertext-stealing pair, if a withheld block remains alongside a
// nonzero final fragment. It does not reset any state; callers
// (finishAndRollover, Finalize) do that once they know emission
// succeeded.
func (c *Cipher) finishDataUnit(dst []byte) (int, error) {
	r := c.fragLen
	need := r
	if c.haveWithheld {
		need += blockSize
	}
	if len(dst) < need {
		return 0, fmt.Errorf("xts: need %d bytes of output, have %d: %w", need, len(dst), ErrOutputBufferTooSmall)
	}
	if !c.haveWithheld {
		return 0, nil
	}
	if r == 0 {
		c.kernelTransform(dst[:blockSize], c.withheld[:], c.tweakWithheld[:])
		return blockSize, nil
	}

	tweakN := c.currentTweak // advanced to T_n when the withheld block was promoted
	if c.forEncryption {
		c.ctsEncrypt(dst[:blockSize+r], c.withheld[:], c.tweakWithheld[:], c.frag[:r], tweakN[:])
	} else {
		c.ctsDecrypt(dst[:blockSize+r], c.withheld[:], c.tweakWithheld[:], c.frag[:r], tweakN[:])
	}
	return blockSize + r, nil
}

// Finalize closes out the current data unit and writes any remaining
// buffered output to dst, returning the number of bytes written.
//
// In Independent mode, Finalize requires that exactly sector_size
// bytes have been consumed since Init; any other total fails with
// ErrSizeMismatch. In Continuous mode, Finalize may be called with the
// data unit anywhere between zero bytes (nothing pending; a no-op) and
// sector_size-1 bytes consumed (full sectors are completed and rolled
// over automatically inside Process) — fewer than one block's worth
// but more than zero fails with ErrInsufficientData.
//
// Finalize may be called at most once; Cipher is stateFinalized
// afterwards regardless of whether it returns an error, and every
// subsequent call fails with ErrLifecycle.
func (c *Cipher) Finalize(dst []byte) (int, error) {
	if err := c.checkActive(); err != nil {
		return 0, fmt.Errorf("xts: finalize: %w", err)
	}

	effectiveLen := c.sectorOffset

	if c.params.Mode == Independent {
		if effectiveLen != c.params.SectorSize {
			c.st = stateFinalized
			return 0, fmt.Errorf("xts: finalize: independent mode consumed %d bytes, want exactly sector_size %d: %w", effectiveLen, c.params.SectorSize, ErrSizeMismatch)
		}
	} else if effectiveLen > 0 && effectiveLen < blockSize {
		c.st = stateFinalized
		return 0, fmt.Errorf("xts: finalize: %d bytes is less than one block: %w", effectiveLen, ErrInsufficientData)
	}

	n, err := c.finishDataUnit(dst)
	if err != nil {
		c.st = stateFinalized
		return 0, err
	}

	c.st = stateFinalized
	c.haveWithheld = false
	c.fragLen = 0
	return n, nil
}

// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xts implements the XTS-AES block cipher mode specified in
// IEEE P1619 and NIST SP 800-38E, as a streaming engine suitable for
// length-preserving confidentiality on block-oriented storage.
//
// XTS wraps a block cipher with Rogaway's XEX mode to build a
// tweakable block cipher: every data unit (sector) gets its own tweak,
// derived from the sector index, so that identical plaintext blocks in
// different sectors encrypt to different ciphertext. Unlike a plain
// block-mode wrapper, this package does not require an entire sector
// to be available at once — Cipher accepts arbitrarily chunked input,
// buffers only the minimum number of bytes needed to apply ciphertext
// stealing (CTS) to a sector whose length isn't a multiple of the
// block size, and advances the tweak exactly once per 16-byte block
// consumed.
//
// This implementation is adapted from the whole-sector XTS-AES cipher
// in golang.org/x/crypto/xts (by way of an internal fork that added
// configurable sector sizes), generalized to a byte-accurate streaming
// state machine and to ciphertext stealing for sector sizes that are
// not multiples of 16.
//
// Two operating policies are supported. In Continuous mode the tweak
// advances automatically across sector boundaries as bytes flow
// through Process; in Independent mode each Init/Process.../Finalize
// cycle must cover exactly one sector of the configured size.
//
// Key and tweak generation, key derivation, and file/disk I/O are
// considered external concerns and are not part of this package; the
// block cipher itself is supplied through the BlockCipher interface
// (crypto/aes is used by default) so a hardware-backed implementation
// can be substituted without touching the streaming state machine.
package xts

// blockSize is the block size the underlying cipher must have; XTS is
// only defined over 16-byte blocks.
const blockSize = 16

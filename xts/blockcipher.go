package xts

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// BlockCipher is the external collaborator the engine drives: a single
// 16-byte-block permutation keyed once and then used for many
// encrypt/decrypt calls. It is deliberately narrower than cipher.Block
// so a constant-time-audited, hardware-accelerated, or test-only
// implementation can satisfy it without carrying unrelated modes.
type BlockCipher interface {
	// BlockSize returns the cipher's block size in bytes. The engine
	// only ever works with 16, the XTS block size.
	BlockSize() int

	// KeySizes returns the key lengths, in bytes, this implementation
	// accepts.
	KeySizes() []int

	// SetKey schedules key for use. forEncryption records which
	// direction the cipher will be driven in; AES's key schedule doesn't
	// need it, but the interface models ciphers that do.
	SetKey(key []byte, forEncryption bool) error

	// EncryptBlock and DecryptBlock transform exactly one block. dst and
	// src may overlap exactly (dst[0]==src[0]); implementations must not
	// assume otherwise.
	EncryptBlock(dst, src []byte)
	DecryptBlock(dst, src []byte)
}

// aesBlockCipher is the default BlockCipher, backed by crypto/aes. The
// AES permutation itself is out of scope for this package (spec.md §1
// treats it as an external, swappable primitive); this type is the
// thin adapter that lets the engine call it through BlockCipher.
type aesBlockCipher struct {
	block cipher.Block
}

// NewAESBlockCipher returns a BlockCipher backed by crypto/aes,
// accepting 128- or 256-bit keys.
func NewAESBlockCipher() BlockCipher {
	return &aesBlockCipher{}
}

func (a *aesBlockCipher) BlockSize() int   { return blockSize }
func (a *aesBlockCipher) KeySizes() []int  { return []int{16, 32} }

func (a *aesBlockCipher) SetKey(key []byte, forEncryption bool) error {
	_ = forEncryption // AES's key schedule is direction-independent.
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("xts: aes key schedule: %w", err)
	}
	a.block = block
	return nil
}

func (a *aesBlockCipher) EncryptBlock(dst, src []byte) { a.block.Encrypt(dst, src) }
func (a *aesBlockCipher) DecryptBlock(dst, src []byte) { a.block.Decrypt(dst, src) }

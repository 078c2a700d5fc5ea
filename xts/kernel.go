package xts

// xorBlock sets dst[i] = a[i] ^ b[i] for one 16-byte block. dst may
// alias a or b.
func xorBlock(dst, a, b []byte) {
	for i := 0; i < blockSize; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// encryptBlock applies the XEX construction to one plaintext block:
// C = E_K1(P xor T) xor T.
func (c *Cipher) encryptBlock(dst, src, tweak []byte) {
	var buf [blockSize]byte
	xorBlock(buf[:], src, tweak)
	c.aesData.EncryptBlock(buf[:], buf[:])
	xorBlock(dst, buf[:], tweak)
}

// decryptBlock inverts encryptBlock: P = D_K1(C xor T) xor T.
func (c *Cipher) decryptBlock(dst, src, tweak []byte) {
	var buf [blockSize]byte
	xorBlock(buf[:], src, tweak)
	c.aesData.DecryptBlock(buf[:], buf[:])
	xorBlock(dst, buf[:], tweak)
}

// kernelTransform applies encryptBlock or decryptBlock according to
// the cipher's configured direction; used for every block emitted
// without ciphertext stealing, including a sector-final block that
// turns out not to need it.
func (c *Cipher) kernelTransform(dst, src, tweak []byte) {
	if c.forEncryption {
		c.encryptBlock(dst, src, tweak)
	} else {
		c.decryptBlock(dst, src, tweak)
	}
}

// ctsEncrypt implements §4.4.2: given the withheld penultimate
// plaintext block (16 bytes, under tweakN1) and the final r-byte
// plaintext tail (under tweakN, the next tweak in sequence), it writes
// the 16+r-byte ciphertext for both blocks to dst, in the order
// C_{n-1} then C_n.
func (c *Cipher) ctsEncrypt(dst, withheld, tweakN1, tail, tweakN []byte) {
	r := len(tail)

	var cc [blockSize]byte
	c.encryptBlock(cc[:], withheld, tweakN1) // CC = E_K1(P_{n-1} xor T_{n-1}) xor T_{n-1}

	var pp [blockSize]byte
	copy(pp[:r], tail)     // first r bytes: P_n
	copy(pp[r:], cc[r:])   // remaining 16-r bytes: tail of CC

	var cn1 [blockSize]byte
	c.encryptBlock(cn1[:], pp[:], tweakN) // C_{n-1} = E_K1(PP xor T_n) xor T_n

	copy(dst[:blockSize], cn1[:])
	copy(dst[blockSize:blockSize+r], cc[:r]) // C_n = first r bytes of CC
}

// ctsDecrypt implements §4.4.3: given the withheld penultimate
// ciphertext block (16 bytes, C_{n-1}) and the final r-byte ciphertext
// tail (C_n), it writes the 16+r-byte plaintext to dst, in the order
// P_{n-1} then P_n. Note the tweak-ordering asymmetry with encryption:
// the withheld block is decrypted first under tweakN (the later
// tweak), not tweakN1.
func (c *Cipher) ctsDecrypt(dst, withheld, tweakN1, tail, tweakN []byte) {
	r := len(tail)

	var pp [blockSize]byte
	c.decryptBlock(pp[:], withheld, tweakN) // PP = D_K1(C_{n-1} xor T_n) xor T_n

	var cc [blockSize]byte
	copy(cc[:r], tail)    // first r bytes: C_n
	copy(cc[r:], pp[r:])  // remaining 16-r bytes: tail of PP

	var pn1 [blockSize]byte
	c.decryptBlock(pn1[:], cc[:], tweakN1) // P_{n-1} = D_K1(CC xor T_{n-1}) xor T_{n-1}

	copy(dst[:blockSize], pn1[:])
	copy(dst[blockSize:blockSize+r], pp[:r]) // P_n = first r bytes of PP
}

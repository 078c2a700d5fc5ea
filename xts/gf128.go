package xts

// encodeSector renders a sector index as the 16-byte little-endian
// block §4.1 feeds to the tweak key's block cipher.
func encodeSector(i SectorIndex) [blockSize]byte {
	return i.bytes()
}

// initialTweak computes T_0 = E_K2(encode_sector(i)), the tweak for
// the first block of sector i.
func initialTweak(tweakCipher BlockCipher, i SectorIndex) [blockSize]byte {
	b := encodeSector(i)
	var t [blockSize]byte
	tweakCipher.EncryptBlock(t[:], b[:])
	return t
}

// advance multiplies the tweak by the generator of GF(2^128) (i.e. by
// x, under the reduction polynomial x^128 + x^7 + x^2 + x + 1),
// mutating t in place. Called once per 16-byte block consumed, this is
// the standard IEEE P1619 "alpha" multiplication: a one-bit left shift
// of the little-endian 128-bit value, carrying out of the top bit of
// byte 15 and, if that carry was set, folding it back in by XORing
// 0x87 into the low byte.
func advance(t *[blockSize]byte) {
	var carryIn byte
	for i := 0; i < blockSize; i++ {
		carryOut := t[i] >> 7
		t[i] = (t[i] << 1) | carryIn
		carryIn = carryOut
	}
	if carryIn != 0 {
		t[0] ^= 0x87
	}
}

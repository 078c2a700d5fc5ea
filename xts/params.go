package xts

import "fmt"

// Mode selects how a Cipher advances the sector tweak across sector
// boundaries.
type Mode int

const (
	// Continuous advances the tweak automatically as Process crosses a
	// sector boundary, so a single Cipher can stream an arbitrarily long
	// run of sectors (e.g. a whole disk image) through one Init/Finalize
	// cycle.
	Continuous Mode = iota

	// Independent requires a fresh Init for every sector and rejects, at
	// Finalize, any data unit whose length is not exactly sector_size.
	// This is the mode xts/xtsio drives its per-sector cipher in.
	Independent
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Independent:
		return "independent"
	default:
		return fmt.Sprintf("xts.Mode(%d)", int(m))
	}
}

// CipherParameters bundles everything Init needs to start a data unit:
// the two AES keys (data and tweak), the sector size, the operating
// mode, and the starting sector index.
//
// KeyData and KeyTweak must be the same length, either 16 bytes (for
// AES-128, i.e. XTS-AES-128) or 32 bytes (AES-256, XTS-AES-256). Per
// IEEE P1619, the two keys must differ in practice — callers are
// responsible for deriving them independently; this package does not
// enforce inequality, matching the teacher's own New, which leaves key
// derivation entirely to the caller.
type CipherParameters struct {
	Mode        Mode
	KeyData     []byte
	KeyTweak    []byte
	SectorSize  int
	SectorIndex SectorIndex
}

// NewParameters validates and returns a CipherParameters, copying the
// key material so that later mutation of the caller's slices cannot
// reach into the returned value.
func NewParameters(mode Mode, keyData, keyTweak []byte, sectorSize int, sectorIndex SectorIndex) (CipherParameters, error) {
	if len(keyData) != len(keyTweak) {
		return CipherParameters{}, fmt.Errorf("xts: key_data is %d bytes but key_tweak is %d bytes: %w", len(keyData), len(keyTweak), ErrConfiguration)
	}
	switch len(keyData) {
	case 16, 32:
	default:
		return CipherParameters{}, fmt.Errorf("xts: key length %d not in {16, 32}: %w", len(keyData), ErrConfiguration)
	}
	if sectorSize < blockSize {
		return CipherParameters{}, fmt.Errorf("xts: sector size %d smaller than block size %d: %w", sectorSize, blockSize, ErrConfiguration)
	}
	if mode != Continuous && mode != Independent {
		return CipherParameters{}, fmt.Errorf("xts: unknown mode %v: %w", mode, ErrConfiguration)
	}

	return CipherParameters{
		Mode:        mode,
		KeyData:     append([]byte(nil), keyData...),
		KeyTweak:    append([]byte(nil), keyTweak...),
		SectorSize:  sectorSize,
		SectorIndex: sectorIndex,
	}, nil
}

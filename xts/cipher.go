package xts

import "fmt"

type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateReady
	stateProcessing
	stateFinalized
)

// Cipher is a buffered, resumable XTS-AES engine. A single Cipher
// value handles one direction (encryption or decryption) of one data
// unit (Independent mode) or an unbounded run of data units
// (Continuous mode), fed through Process in arbitrarily sized chunks
// and closed out with Finalize.
//
// The zero Cipher is not usable; construct one with New and call Init
// before Process or Finalize. A Cipher is not safe for concurrent use.
type Cipher struct {
	forEncryption bool
	params        CipherParameters
	aesData       BlockCipher
	aesTweak      BlockCipher

	currentSector SectorIndex
	currentTweak  [blockSize]byte // tweak for the next block to be consumed
	sectorOffset  int             // bytes consumed so far in the current data unit

	// At most one completed-but-unemitted block is ever held, alongside
	// the raw bytes of whatever block is currently being assembled. This
	// is the ≤32-byte carry spec.md §9 calls for: 16 bytes for the
	// withheld block plus up to 15 bytes of in-progress fragment.
	withheld      [blockSize]byte
	tweakWithheld [blockSize]byte
	haveWithheld  bool
	frag          [blockSize]byte
	fragLen       int

	st lifecycleState
}

// New returns an uninitialized Cipher. Call Init before using it.
func New() *Cipher {
	return &Cipher{st: stateUninitialized}
}

// NewCipher allocates and initializes a Cipher in one step.
func NewCipher(forEncryption bool, params CipherParameters) (*Cipher, error) {
	c := New()
	if err := c.Init(forEncryption, params); err != nil {
		return nil, err
	}
	return c, nil
}

// Init resets c to start a new data unit with the default AES-backed
// BlockCipher for both the data and tweak keys.
func (c *Cipher) Init(forEncryption bool, params CipherParameters) error {
	return c.InitWithBlockCiphers(forEncryption, params, NewAESBlockCipher(), NewAESBlockCipher())
}

// InitWithBlockCiphers is Init, but with the two BlockCipher
// implementations supplied explicitly — the extension point §6
// reserves for hardware-backed or test collaborators.
func (c *Cipher) InitWithBlockCiphers(forEncryption bool, params CipherParameters, aesData, aesTweak BlockCipher) error {
	if len(params.KeyData) != len(params.KeyTweak) {
		return fmt.Errorf("xts: init: key_data is %d bytes but key_tweak is %d bytes: %w", len(params.KeyData), len(params.KeyTweak), ErrConfiguration)
	}
	switch len(params.KeyData) {
	case 16, 32:
	default:
		return fmt.Errorf("xts: init: key length %d not in {16, 32}: %w", len(params.KeyData), ErrConfiguration)
	}
	if params.SectorSize < blockSize {
		return fmt.Errorf("xts: init: sector size %d smaller than block size %d: %w", params.SectorSize, blockSize, ErrConfiguration)
	}
	if params.Mode != Continuous && params.Mode != Independent {
		return fmt.Errorf("xts: init: unknown mode %v: %w", params.Mode, ErrConfiguration)
	}
	if params.Mode == Continuous && params.SectorIndex.IsMax() {
		return fmt.Errorf("xts: init: starting sector index is already at the maximum representable value for continuous mode: %w", ErrConfiguration)
	}

	if err := aesData.SetKey(params.KeyData, forEncryption); err != nil {
		return fmt.Errorf("xts: init: %w: %w", err, ErrConfiguration)
	}
	if err := aesTweak.SetKey(params.KeyTweak, true); err != nil {
		return fmt.Errorf("xts: init: %w: %w", err, ErrConfiguration)
	}

	c.zeroSensitive()

	c.forEncryption = forEncryption
	c.params = CipherParameters{
		Mode:        params.Mode,
		KeyData:     append([]byte(nil), params.KeyData...),
		KeyTweak:    append([]byte(nil), params.KeyTweak...),
		SectorSize:  params.SectorSize,
		SectorIndex: params.SectorIndex,
	}
	c.aesData = aesData
	c.aesTweak = aesTweak
	c.currentSector = params.SectorIndex
	c.currentTweak = initialTweak(c.aesTweak, c.currentSector)
	c.sectorOffset = 0
	c.haveWithheld = false
	c.fragLen = 0
	c.st = stateReady
	return nil
}

// CurrentSector returns the index of the sector the next consumed byte
// belongs to. In Continuous mode it advances each time Process
// completes a sector; in Independent mode it stays the sector the
// cipher was initialized for.
func (c *Cipher) CurrentSector() SectorIndex { return c.currentSector }

// Destroy zeroes c's copies of the keys, its tweak values and its
// buffered data, and returns it to the uninitialized state. The
// expanded key schedules held inside the two BlockCipher
// implementations are not cleared. Callers that handle key material under a
// data-sensitivity policy should call Destroy once a Cipher is no
// longer needed rather than relying on garbage collection.
func (c *Cipher) Destroy() {
	c.zeroSensitive()
	c.st = stateUninitialized
}

func (c *Cipher) zeroSensitive() {
	zero(c.currentTweak[:])
	zero(c.tweakWithheld[:])
	zero(c.withheld[:])
	zero(c.frag[:])
	if c.params.KeyData != nil {
		zero(c.params.KeyData)
	}
	if c.params.KeyTweak != nil {
		zero(c.params.KeyTweak)
	}
}

func (c *Cipher) checkActive() error {
	switch c.st {
	case stateUninitialized, stateFinalized:
		return fmt.Errorf("xts: %w", ErrLifecycle)
	default:
		return nil
	}
}

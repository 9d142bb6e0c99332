// Package random is the process-wide secure random source.
//
// A Generator is a fast-key-erasure ChaCha20 generator: every draw first
// replaces the generator key with the head of the keystream, so output that
// has been handed out cannot be recomputed from a later state. The key is
// seeded lazily from an entropy reader on first use and reseeded after
// reseedInterval bytes of output.
//
// All draws on a Generator are serialized by its mutex. Key generation uses a
// separate Pool whose entropy incorporation is serialized by a package-level
// key generation lock, so the two never contend.
package random

import (
	"crypto/rand"
	"crypto/sha512"
	"io"
	"math/big"
	"sync"

	"github.com/go-i2p/logger"
	"golang.org/x/crypto/chacha20"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/utils"
)

const (
	domain = "random"

	keySize        = chacha20.KeySize
	reseedInterval = 1 << 20
)

var log = logger.GetGoI2PLogger()

var (
	defaultOnce      sync.Once
	defaultGenerator *Generator
)

// Generator is a mutex guarded deterministic generator keyed from an entropy source.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	key     [keySize]byte
	seeded  bool
	drawn   int
}

// New returns a generator that seeds itself from entropy. A nil entropy
// reader selects crypto/rand.
func New(entropy io.Reader) *Generator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{entropy: entropy}
}

// Default returns the process-wide generator, creating it on first use.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGenerator = New(rand.Reader)
	})
	return defaultGenerator
}

// Read fills p with random bytes. It fails only when the entropy source
// cannot be read, with an error matching cryptoerr.ErrEntropy.
func (g *Generator) Read(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.fill(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// fill must be called with g.mu held.
func (g *Generator) fill(p []byte) error {
	if !g.seeded || (g.entropy != nil && g.drawn >= reseedInterval) {
		if err := g.reseed(); err != nil {
			return err
		}
	}

	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(g.key[:], nonce[:])
	if err != nil {
		return cryptoerr.Primitive(domain, err, "keystream")
	}

	var next [keySize]byte
	stream.XORKeyStream(next[:], next[:])
	clear(p)
	stream.XORKeyStream(p, p)

	g.key = next
	utils.Wipe(next[:])
	g.drawn += len(p)
	return nil
}

// reseed must be called with g.mu held.
func (g *Generator) reseed() error {
	if g.entropy == nil {
		return cryptoerr.Entropy(domain, nil, "generator has no entropy source and was never seeded")
	}
	fresh := make([]byte, keySize)
	defer utils.Wipe(fresh)
	if _, err := io.ReadFull(g.entropy, fresh); err != nil {
		return cryptoerr.Entropy(domain, err, "reading %d bytes of seed", keySize)
	}
	g.mix(fresh)
	g.drawn = 0
	return nil
}

// mix must be called with g.mu held.
func (g *Generator) mix(material []byte) {
	h := sha512.New()
	h.Write(g.key[:])
	h.Write(material)
	sum := h.Sum(nil)
	copy(g.key[:], sum)
	utils.Wipe(sum)
	g.seeded = true
}

// Block returns size random bytes from g. Entropy failure is fatal.
func (g *Generator) Block(size int) []byte {
	if size <= 0 {
		return []byte{}
	}
	block := make([]byte, size)
	if _, err := g.Read(block); err != nil {
		log.WithField("size", size).WithError(err).Fatal("random block: entropy source failed")
	}
	return block
}

// Number returns a uniform integer in [0, 2^bitCount) from g.
func (g *Generator) Number(bitCount int) *big.Int {
	if bitCount <= 0 {
		return new(big.Int)
	}
	block := g.Block((bitCount + 7) / 8)
	if excess := uint(len(block)*8 - bitCount); excess > 0 {
		block[0] &= byte(0xff >> excess)
	}
	return new(big.Int).SetBytes(block)
}

// Block returns size random bytes from the process-wide generator.
func Block(size int) []byte {
	return Default().Block(size)
}

// Number returns a uniform random integer of bitCount bits from the
// process-wide generator.
func Number(bitCount int) *big.Int {
	return Default().Number(bitCount)
}

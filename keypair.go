package safecrypto

import (
	"bytes"
	"crypto/rsa"
	"sync"

	"github.com/overnest/safecrypto-go/asymm"
	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/random"
	"github.com/overnest/safecrypto-go/utils"
)

const (
	MinKeySize     = 1024
	DefaultKeySize = 2048
	MaxKeySize     = 16384

	keyPairDomain = "keypair"
)

// RsaKeyPair holds an encoded RSA private key and its public key. The pair is
// either empty or fully populated with matching halves.
type RsaKeyPair struct {
	mu         sync.RWMutex
	privateKey []byte
	publicKey  []byte
}

// NewRsaKeyPair rebuilds a key pair from its encoded halves, which must match.
func NewRsaKeyPair(privateKey, publicKey []byte) (*RsaKeyPair, error) {
	derived, err := asymm.PublicKeyFor(privateKey)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(derived, publicKey) {
		return nil, cryptoerr.Invalid(keyPairDomain, "public key does not belong to private key")
	}
	return &RsaKeyPair{
		privateKey: bytes.Clone(privateKey),
		publicKey:  derived,
	}, nil
}

// GenerateKeys replaces the key material with a fresh pair of keySize bits.
// Existing keys are cleared first; on failure the pair is left empty.
func (kp *RsaKeyPair) GenerateKeys(keySize int) error {
	kp.ClearKeys()
	privateKey, publicKey, err := generateKeys(keySize)
	if err != nil {
		_, err = report("GenerateKeys", nil, err)
		return err
	}

	kp.mu.Lock()
	defer kp.mu.Unlock()
	kp.privateKey = privateKey
	kp.publicKey = publicKey
	return nil
}

var (
	encodePrivateKey = asymm.EncodePrivateKey
	encodePublicKey  = asymm.EncodePublicKey
)

func generateKeys(keySize int) (privateKey, publicKey []byte, err error) {
	if keySize < MinKeySize || keySize > MaxKeySize {
		return nil, nil, cryptoerr.Invalid(keyPairDomain, "key size %d outside [%d, %d]",
			keySize, MinKeySize, MaxKeySize)
	}

	seed := random.Block(keySize)
	defer utils.Wipe(seed)
	pool := random.NewPool()
	pool.IncorporateEntropy(seed)

	key, err := rsa.GenerateKey(pool, keySize)
	if err != nil {
		return nil, nil, cryptoerr.Primitive(keyPairDomain, err, "generating %d bit key", keySize)
	}
	privateKey, err = encodePrivateKey(key)
	if err != nil {
		return nil, nil, err
	}
	publicKey, err = encodePublicKey(&key.PublicKey)
	if err != nil {
		utils.Wipe(privateKey)
		return nil, nil, err
	}
	return privateKey, publicKey, nil
}

// ClearKeys wipes and drops both keys.
func (kp *RsaKeyPair) ClearKeys() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	utils.Wipe(kp.privateKey)
	kp.privateKey = nil
	kp.publicKey = nil
}

func (kp *RsaKeyPair) Empty() bool {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	return len(kp.privateKey) == 0
}

// PrivateKey returns a copy of the PKCS#8 encoded private key.
func (kp *RsaKeyPair) PrivateKey() []byte {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	return bytes.Clone(kp.privateKey)
}

// PublicKey returns a copy of the PKIX encoded public key.
func (kp *RsaKeyPair) PublicKey() []byte {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	return bytes.Clone(kp.publicKey)
}

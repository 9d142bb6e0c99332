// Package asymm implements RSA encryption with OAEP padding.
//
// Ciphertexts are randomized through the process-wide generator in package
// random. Keys are passed in their encoded form (see keys.go).
package asymm

import (
	"crypto/rsa"
	"io"

	"github.com/go-i2p/logger"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/hashtype"
	"github.com/overnest/safecrypto-go/random"
)

const domain = "asymm"

var log = logger.GetGoI2PLogger()

var (
	// OAEP over SHA-1 matches RSAES-OAEP-SHA as produced by other
	// implementations of this format.
	oaepHash = hashtype.TypeSha1

	rng = func() io.Reader { return random.Default() }
)

// MaxPlaintextSize returns the longest message Encrypt accepts for publicKey.
func MaxPlaintextSize(publicKey []byte) (int, error) {
	pub, err := DecodePublicKey(publicKey)
	if err != nil {
		return 0, err
	}
	return pub.Size() - 2*oaepHash.Size() - 2, nil
}

func Encrypt(plaintext, publicKey []byte) ([]byte, error) {
	if len(plaintext) == 0 || len(publicKey) == 0 {
		return nil, cryptoerr.Invalid(domain, "empty key or input")
	}
	pub, err := DecodePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return WithRetry(domain, func() ([]byte, error) {
		ciphertext, err := rsa.EncryptOAEP(oaepHash.HashFunc(), rng(), pub, plaintext, nil)
		if err != nil {
			return nil, classify(err, "encrypting %d bytes", len(plaintext))
		}
		return ciphertext, nil
	})
}

func Decrypt(ciphertext, privateKey []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(privateKey) == 0 {
		return nil, cryptoerr.Invalid(domain, "empty key or input")
	}
	priv, err := DecodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	// Decryption blinds with crypto/rand internally and reads no generator.
	plaintext, err := rsa.DecryptOAEP(oaepHash.HashFunc(), nil, priv, ciphertext, nil)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "decrypting %d bytes", len(ciphertext))
	}
	return plaintext, nil
}

func classify(err error, format string, args ...any) error {
	if cryptoerr.IsTransient(err) {
		return cryptoerr.Entropy(domain, err, format, args...)
	}
	return cryptoerr.Primitive(domain, err, format, args...)
}

// Package safecrypto is the flat entry point to the primitives: symmetric
// and asymmetric encryption, signatures, password based key derivation,
// secure randomness, compression and XOR masking over plain byte slices.
//
// Every function here is safe for concurrent use. Failures are returned as
// errors matching the sentinels in package cryptoerr and are logged at this
// boundary, warn level for bad input and error level for primitive failures.
// A failed call never returns partial output.
package safecrypto

import (
	"errors"
	"math/big"

	"github.com/go-i2p/logger"

	"github.com/overnest/safecrypto-go/asymm"
	"github.com/overnest/safecrypto-go/compress"
	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/kdf/pbkdf2"
	"github.com/overnest/safecrypto-go/random"
	"github.com/overnest/safecrypto-go/sign"
	"github.com/overnest/safecrypto-go/symm"
	"github.com/overnest/safecrypto-go/utils"
)

const (
	AES256KeySize = symm.KeySize
	AES256IVSize  = symm.IVSize

	MaxCompressionLevel = compress.MaxCompressionLevel
)

var log = logger.GetGoI2PLogger()

func report(op string, result []byte, err error) ([]byte, error) {
	if err == nil {
		return result, nil
	}
	entry := log.WithField("op", op).WithError(err)
	if errors.Is(err, cryptoerr.ErrInvalidInput) {
		entry.Warn("rejected input")
	} else {
		entry.Error("operation failed")
	}
	return nil, err
}

// XOR combines two equal length, non-empty byte strings.
func XOR(first, second []byte) ([]byte, error) {
	result, err := utils.XOR(first, second)
	return report("XOR", result, err)
}

// SecurePassword derives AES256KeySize+AES256IVSize bytes of key and IV
// material from a password.
func SecurePassword(password, salt []byte, pin uint32, label []byte) ([]byte, error) {
	result, err := pbkdf2.SecurePassword(password, salt, pin, label)
	return report("SecurePassword", result, err)
}

func SymmEncrypt(input, key, iv []byte) ([]byte, error) {
	result, err := symm.Encrypt(input, key, iv)
	return report("SymmEncrypt", result, err)
}

func SymmDecrypt(input, key, iv []byte) ([]byte, error) {
	result, err := symm.Decrypt(input, key, iv)
	return report("SymmDecrypt", result, err)
}

func AsymEncrypt(input, publicKey []byte) ([]byte, error) {
	result, err := asymm.Encrypt(input, publicKey)
	return report("AsymEncrypt", result, err)
}

func AsymDecrypt(input, privateKey []byte) ([]byte, error) {
	result, err := asymm.Decrypt(input, privateKey)
	return report("AsymDecrypt", result, err)
}

func AsymSign(input, privateKey []byte) ([]byte, error) {
	result, err := sign.Sign(input, privateKey)
	return report("AsymSign", result, err)
}

// AsymCheckSig reports whether signature is valid for data under publicKey.
// Malformed keys and signatures are reported as invalid, never as errors.
func AsymCheckSig(data, signature, publicKey []byte) bool {
	if err := sign.Verify(data, signature, publicKey); err != nil {
		log.WithField("op", "AsymCheckSig").WithError(err).Debug("signature rejected")
		return false
	}
	return true
}

func Compress(input []byte, level int) ([]byte, error) {
	result, err := compress.Compress(input, level)
	return report("Compress", result, err)
}

func Uncompress(input []byte) ([]byte, error) {
	result, err := compress.Uncompress(input)
	return report("Uncompress", result, err)
}

// UncompressLimit is Uncompress with output capped at limit bytes.
func UncompressLimit(input []byte, limit int64) ([]byte, error) {
	result, err := compress.UncompressLimit(input, limit)
	return report("UncompressLimit", result, err)
}

// RandomBlock returns size bytes from the process-wide secure generator.
func RandomBlock(size int) []byte {
	return random.Block(size)
}

// RandomNumber returns a uniform integer in [0, 2^bitCount).
func RandomNumber(bitCount int) *big.Int {
	return random.Number(bitCount)
}

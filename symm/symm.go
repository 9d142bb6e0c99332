// Package symm implements AES-256 in cipher feedback mode.
//
// CFB turns the block cipher into a self-synchronizing stream cipher, so no
// padding is involved and ciphertext is exactly as long as plaintext. Keys
// and IVs longer than KeySize and IVSize are truncated; shorter ones are
// rejected.
package symm

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	KeySize = 32
	IVSize  = aes.BlockSize

	domain = "symm"
)

func newBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) < KeySize || len(iv) < IVSize {
		return nil, cryptoerr.Invalid(domain, "undersized key or IV: %d and %d bytes, need %d and %d",
			len(key), len(iv), KeySize, IVSize)
	}
	block, err := aes.NewCipher(key[:KeySize])
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "creating AES-256 cipher")
	}
	return block, nil
}

// NewEncryptStream returns the CFB encryption stream for key and iv.
func NewEncryptStream(key, iv []byte) (cipher.Stream, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}
	return cipher.NewCFBEncrypter(block, iv[:IVSize]), nil
}

// NewDecryptStream returns the CFB decryption stream for key and iv.
func NewDecryptStream(key, iv []byte) (cipher.Stream, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}
	return cipher.NewCFBDecrypter(block, iv[:IVSize]), nil
}

func Encrypt(plaintext, key, iv []byte) ([]byte, error) {
	stream, err := NewEncryptStream(key, iv)
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, len(plaintext))
	stream.XORKeyStream(ciphertext, plaintext)
	return ciphertext, nil
}

func Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	stream, err := NewDecryptStream(key, iv)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// SplitKeyIV slices derived secret material into a key and an IV.
func SplitKeyIV(secret []byte) (key, iv []byte, err error) {
	if len(secret) < KeySize+IVSize {
		return nil, nil, cryptoerr.Invalid(domain, "secret of %d bytes is too short for key and IV", len(secret))
	}
	return secret[:KeySize], secret[KeySize : KeySize+IVSize], nil
}

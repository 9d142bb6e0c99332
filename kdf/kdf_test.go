package kdf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/kdf/argon2"
	"github.com/overnest/safecrypto-go/kdf/pbkdf2"
	"github.com/overnest/safecrypto-go/symm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kdfTypes = []*KdfType{Type_Pbkdf2, Type_Argon2}

func TestKdf(t *testing.T) {
	password := []byte("PassWord123")
	plaintext := []byte("This is a sentence.")

	for _, kdfType := range kdfTypes {
		kdf1, err := New(kdfType)
		require.NoError(t, err, kdfType.Name)

		key, iv, err := kdf1.DeriveKeyIV(password)
		require.NoError(t, err, kdfType.Name)
		assert.Len(t, key, symm.KeySize)
		assert.Len(t, iv, symm.IVSize)

		ciphertext, err := symm.Encrypt(plaintext, key, iv)
		assert.NoError(t, err)

		// Serialization
		serialKdf, err := kdf1.Serialize()
		require.NoError(t, err)

		kdf2, err := DeserializeKdf(serialKdf)
		require.NoError(t, err)
		assert.Same(t, kdfType, kdf2.Type)

		key2, iv2, err := kdf2.DeriveKeyIV(password)
		require.NoError(t, err)

		decrypted, err := symm.Decrypt(ciphertext, key2, iv2)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted), kdfType.Name)

		_, _, err = kdf2.DeriveKeyIV(nil)
		assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	}
}

func TestTypeFromName(t *testing.T) {
	assert.Same(t, Type_Pbkdf2, TypeFromName("PBKDF2"))
	assert.Same(t, Type_Argon2, TypeFromName("ARGON2"))
	assert.Nil(t, TypeFromName("SCRYPT"))

	_, err := New(nil)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestDeserializeErrors(t *testing.T) {
	kdf1, err := New(Type_Pbkdf2)
	require.NoError(t, err)
	data, err := kdf1.Serialize()
	require.NoError(t, err)

	_, err = DeserializeKdf(data[:3])
	assert.Error(t, err)
	_, err = DeserializeKdf(data[:10])
	assert.Error(t, err)

	tampered := append([]byte{}, data...)
	tampered[8] = 'X' // first byte of the type name
	_, err = DeserializeKdf(tampered)
	assert.Error(t, err)
}

// Offsets into a VERSION_ONE record: version, type name field ("PBKDF2" and
// "ARGON2" are both six bytes), data length, then the kdf data with its own
// version and a 16 byte salt field.
const (
	iterOffset   = 4 + 4 + 6 + 4 + 4 + 4 + 16
	memoryOffset = iterOffset + 4
)

func withUint32(data []byte, offset int, v uint32) []byte {
	tampered := append([]byte{}, data...)
	binary.BigEndian.PutUint32(tampered[offset:], v)
	return tampered
}

func TestDeserializeBounds(t *testing.T) {
	pbkdf, err := New(Type_Pbkdf2)
	require.NoError(t, err)
	pbkdfData, err := pbkdf.Serialize()
	require.NoError(t, err)

	_, err = DeserializeKdf(withUint32(pbkdfData, iterOffset, pbkdf2.MaxIterations))
	assert.NoError(t, err)
	_, err = DeserializeKdf(withUint32(pbkdfData, iterOffset, pbkdf2.MaxIterations+1))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = DeserializeKdf(withUint32(pbkdfData, iterOffset, 0xFFFFFFFF))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = DeserializeKdf(withUint32(pbkdfData, iterOffset, 0))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)

	argon, err := New(Type_Argon2)
	require.NoError(t, err)
	argonData, err := argon.Serialize()
	require.NoError(t, err)

	_, err = DeserializeKdf(withUint32(argonData, iterOffset, argon2.MaxIterations))
	assert.NoError(t, err)
	_, err = DeserializeKdf(withUint32(argonData, iterOffset, argon2.MaxIterations+1))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = DeserializeKdf(withUint32(argonData, memoryOffset, argon2.MaxMemory))
	assert.NoError(t, err)
	_, err = DeserializeKdf(withUint32(argonData, memoryOffset, argon2.MaxMemory+1))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = DeserializeKdf(withUint32(argonData, memoryOffset, 0xFFFFFFFF))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

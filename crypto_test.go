package safecrypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

func TestXOR(t *testing.T) {
	first := []byte{0x0f, 0xf0, 0xaa}
	second := []byte{0xff, 0xff, 0x55}

	result, err := XOR(first, second)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xf0, 0x0f, 0xff}, result)

	back, err := XOR(result, second)
	assert.NoError(t, err)
	assert.Equal(t, first, back)

	result, err = XOR(first, second[:2])
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	assert.Nil(t, result)

	_, err = XOR(nil, nil)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestSecurePasswordFeedsSymm(t *testing.T) {
	secret, err := SecurePassword([]byte("password"), []byte("salt"), 1234, []byte("label"))
	assert.NoError(t, err)
	assert.Len(t, secret, AES256KeySize+AES256IVSize)

	again, err := SecurePassword([]byte("password"), []byte("salt"), 1234, []byte("label"))
	assert.NoError(t, err)
	assert.Equal(t, secret, again)

	key, iv := secret[:AES256KeySize], secret[AES256KeySize:]
	plaintext := []byte("derived key material round trip")
	ciphertext, err := SymmEncrypt(plaintext, key, iv)
	assert.NoError(t, err)
	assert.Len(t, ciphertext, len(plaintext))
	decrypted, err := SymmDecrypt(ciphertext, key, iv)
	assert.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	_, err = SecurePassword(nil, []byte("salt"), 1234, []byte("label"))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestSymmEmptyAndShortKey(t *testing.T) {
	key := RandomBlock(AES256KeySize)
	iv := RandomBlock(AES256IVSize)

	ciphertext, err := SymmEncrypt([]byte{}, key, iv)
	assert.NoError(t, err)
	assert.Empty(t, ciphertext)
	plaintext, err := SymmDecrypt(ciphertext, key, iv)
	assert.NoError(t, err)
	assert.Empty(t, plaintext)

	_, err = SymmEncrypt([]byte("data"), key[:AES256KeySize-1], iv)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = SymmDecrypt([]byte("data"), key, iv[:AES256IVSize-1])
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestAsymFacadeFailures(t *testing.T) {
	kp := sharedKeyPair(t)

	_, err := AsymEncrypt(nil, kp.PublicKey())
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = AsymEncrypt([]byte("data"), []byte("not a key"))
	assert.ErrorIs(t, err, cryptoerr.ErrPrimitive)

	ciphertext, err := AsymEncrypt([]byte("data"), kp.PublicKey())
	assert.NoError(t, err)
	ciphertext[len(ciphertext)-1] ^= 0x01
	plaintext, err := AsymDecrypt(ciphertext, kp.PrivateKey())
	assert.ErrorIs(t, err, cryptoerr.ErrPrimitive)
	assert.Nil(t, plaintext)

	_, err = AsymSign(nil, kp.PrivateKey())
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestAsymCheckSig(t *testing.T) {
	kp := sharedKeyPair(t)
	data := []byte("signed payload")

	signature, err := AsymSign(data, kp.PrivateKey())
	assert.NoError(t, err)
	assert.True(t, AsymCheckSig(data, signature, kp.PublicKey()))

	assert.False(t, AsymCheckSig([]byte("other payload"), signature, kp.PublicKey()))
	assert.False(t, AsymCheckSig(data, signature[1:], kp.PublicKey()))
	assert.False(t, AsymCheckSig(data, signature, []byte("not a key")))
	assert.False(t, AsymCheckSig(data, nil, kp.PublicKey()))
}

func TestCompressFacade(t *testing.T) {
	input := bytes.Repeat([]byte("compressible "), 100)
	for level := 0; level <= MaxCompressionLevel; level++ {
		compressed, err := Compress(input, level)
		assert.NoError(t, err)
		restored, err := Uncompress(compressed)
		assert.NoError(t, err)
		assert.Equal(t, input, restored)
	}

	_, err := Compress(input, MaxCompressionLevel+1)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
	_, err = Uncompress([]byte("definitely not gzip"))
	assert.ErrorIs(t, err, cryptoerr.ErrPrimitive)
}

func TestRandomFacade(t *testing.T) {
	block := RandomBlock(64)
	assert.Len(t, block, 64)
	assert.NotEqual(t, block, RandomBlock(64))
	assert.Empty(t, RandomBlock(0))

	for i := 0; i < 100; i++ {
		n := RandomNumber(8)
		assert.True(t, n.Sign() >= 0)
		assert.True(t, n.BitLen() <= 8)
	}
}

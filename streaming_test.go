package safecrypto

import (
	"crypto/rand"
	"io"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testPlaintextLen = 1000
const testSubLen = 20

func newStreamKey(t *testing.T) (key, iv []byte) {
	key = make([]byte, AES256KeySize)
	iv = make([]byte, AES256IVSize)
	_, err := rand.Read(key)
	assert.NoError(t, err)
	_, err = rand.Read(iv)
	assert.NoError(t, err)
	return
}

func TestStreamingBasic(t *testing.T) {
	key, iv := newStreamKey(t)

	encryptor, err := NewEncryptor(key, iv)
	assert.NoError(t, err)
	decryptor, err := NewDecryptor(key, iv)
	assert.NoError(t, err)

	plaintext := make([]byte, AES256IVSize)
	rand.Read(plaintext)

	n, err := encryptor.Write(plaintext)
	assert.NoError(t, err)
	assert.Equal(t, len(plaintext), n)

	buf1 := make([]byte, len(plaintext)/2)
	n1, err := encryptor.Read(buf1) // buffer size < available bytes
	assert.NoError(t, err)
	assert.Equal(t, len(plaintext)/2, n1)

	buf2 := make([]byte, len(plaintext))
	n2, err := encryptor.Read(buf2) // buffer size > available bytes
	assert.NoError(t, err)
	assert.Equal(t, len(plaintext)/2, n2)
	buf2 = buf2[:n2]

	remaining, err := encryptor.ReadLast()
	assert.NoError(t, err)
	assert.Len(t, remaining, 0)

	ciphertext := append(buf1, buf2...)
	expected, err := SymmEncrypt(plaintext, key, iv)
	assert.NoError(t, err)
	assert.Equal(t, expected, ciphertext)

	_, err = decryptor.Write(ciphertext)
	assert.NoError(t, err)
	decrypted, err := decryptor.ReadLast()
	assert.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestStreamingChunked(t *testing.T) {
	key, iv := newStreamKey(t)

	encryptor, err := NewEncryptor(key, iv)
	assert.NoError(t, err)
	decryptor, err := NewDecryptor(key, iv)
	assert.NoError(t, err)

	plaintext := make([]byte, testPlaintextLen)
	rand.Read(plaintext)
	originalText := make([]byte, testPlaintextLen)
	copy(originalText, plaintext)

	// encryptor
	var encrypted []byte
	buf := make([]byte, AES256IVSize)
	for len(plaintext) > 0 {
		subLen := mrand.Intn(testSubLen)
		if subLen > len(plaintext) {
			subLen = len(plaintext)
		}
		_, err := encryptor.Write(plaintext[:subLen])
		assert.NoError(t, err)
		plaintext = plaintext[subLen:]
		n, err := encryptor.Read(buf)
		assert.NoError(t, err)
		encrypted = append(encrypted, buf[:n]...)
	}
	lastEncrypted, err := encryptor.ReadLast()
	assert.NoError(t, err)
	encrypted = append(encrypted, lastEncrypted...)
	assert.Len(t, encrypted, testPlaintextLen)

	oneShot, err := SymmEncrypt(originalText, key, iv)
	assert.NoError(t, err)
	assert.Equal(t, oneShot, encrypted)

	// decryptor
	var decrypted []byte
	for len(encrypted) > 0 {
		subLen := mrand.Intn(testSubLen)
		if subLen > len(encrypted) {
			subLen = len(encrypted)
		}
		_, err := decryptor.Write(encrypted[:subLen])
		assert.NoError(t, err)
		encrypted = encrypted[subLen:]
		n, err := decryptor.Read(buf)
		assert.NoError(t, err)
		decrypted = append(decrypted, buf[:n]...)
	}
	lastDecrypted, err := decryptor.ReadLast()
	assert.NoError(t, err)
	decrypted = append(decrypted, lastDecrypted...)
	assert.Equal(t, originalText, decrypted)
}

func TestStreamingClose(t *testing.T) {
	key, iv := newStreamKey(t)

	encryptor, err := NewEncryptor(key, iv)
	assert.NoError(t, err)
	_, err = encryptor.Write([]byte("pending"))
	assert.NoError(t, err)
	assert.NoError(t, encryptor.CloseWrite())

	_, err = encryptor.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrStreamClosed)

	buf := make([]byte, 64)
	n, err := encryptor.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	_, err = encryptor.Read(buf)
	assert.ErrorIs(t, err, io.EOF)

	assert.NoError(t, encryptor.Close())
	_, err = encryptor.Read(buf)
	assert.ErrorIs(t, err, ErrStreamClosed)
	_, err = encryptor.ReadLast()
	assert.ErrorIs(t, err, ErrStreamClosed)
}

func TestStreamingBadKey(t *testing.T) {
	_, iv := newStreamKey(t)

	_, err := NewEncryptor(make([]byte, AES256KeySize-1), iv)
	assert.Error(t, err)
	_, err = NewDecryptor(make([]byte, AES256KeySize), iv[:AES256IVSize-1])
	assert.Error(t, err)
}

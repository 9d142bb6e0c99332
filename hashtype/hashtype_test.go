package hashtype

import (
	"crypto/sha512"
	"testing"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/stretchr/testify/assert"
)

func TestHashTypes(t *testing.T) {
	for _, hashType := range []*HashType{TypeSha1, TypeSha256, TypeSha512} {
		data, err := hashType.Serialize()
		assert.NoError(t, err)

		same, err := DeserializeHashType(data)
		assert.NoError(t, err)
		assert.Same(t, hashType, same)
		assert.Len(t, hashType.Sum([]byte("abc")), hashType.Size(), hashType.Name)
	}

	_, err := DeserializeHashType([]byte("md5"))
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidInput)
}

func TestSum(t *testing.T) {
	expected := sha512.Sum512([]byte("message"))
	assert.Equal(t, expected[:], TypeSha512.Sum([]byte("message")))
}

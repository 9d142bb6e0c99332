package hashtype

import (
	"crypto"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

const domain = "hashtype"

type HashType struct {
	Name     string
	HashFunc func() hash.Hash
	// Hash identifies the function to crypto/rsa, which needs it to build
	// the PKCS#1 v1.5 DigestInfo prefix.
	Hash crypto.Hash
}

var (
	hashTypeMap map[string]*HashType = make(map[string]*HashType)

	TypeSha1   *HashType = newHashType("sha1", sha1.New, crypto.SHA1)
	TypeSha256 *HashType = newHashType("sha256", sha256.New, crypto.SHA256)
	TypeSha512 *HashType = newHashType("sha512", sha512.New, crypto.SHA512)
)

func newHashType(name string, hashFunc func() hash.Hash, id crypto.Hash) *HashType {
	hashType := &HashType{name, hashFunc, id}
	hashTypeMap[name] = hashType
	return hashType
}

// Sum hashes data in one shot.
func (h *HashType) Sum(data []byte) []byte {
	hasher := h.HashFunc()
	hasher.Write(data)
	return hasher.Sum(nil)
}

func (h *HashType) Size() int {
	return h.Hash.Size()
}

func (h *HashType) Serialize() ([]byte, error) {
	return []byte(h.Name), nil
}

func DeserializeHashType(data []byte) (*HashType, error) {
	hashTypeName := string(data)
	hashType, exists := hashTypeMap[hashTypeName]
	if !exists {
		return nil, cryptoerr.Invalid(domain, "cannot find hash type: %v", hashTypeName)
	}
	return hashType, nil
}

// Package envelope holds the self-describing records that travel with
// encrypted data: the SafeEncrypt hybrid container and the VersionRecord
// metadata. Both use the versioned, length-prefixed framing of package
// version.
package envelope

import (
	"bytes"

	"github.com/overnest/safecrypto-go/asymm"
	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/kdf"
	"github.com/overnest/safecrypto-go/random"
	"github.com/overnest/safecrypto-go/symm"
	"github.com/overnest/safecrypto-go/utils"
	"github.com/overnest/safecrypto-go/version"
)

const domain = "envelope"

/*
** Version
 */

const (
	safeEncryptVersionName = "SafeEncryptVersion"
)

var (
	SAFE_ENCRYPT_VERSION_ONE = newSafeEncryptVersion("ONE", 1)
	curSafeEncryptVersion    = SAFE_ENCRYPT_VERSION_ONE
)

type SafeEncryptVersion struct {
	Name    string
	Version version.Version
}

func (v *SafeEncryptVersion) GetVersion() version.Version {
	return v.Version
}

var safeEncryptVersionMap = make(map[int32]version.VersionInterface)

func newSafeEncryptVersion(name string, ver int32) *SafeEncryptVersion {
	v := &SafeEncryptVersion{name, version.Version(ver)}
	safeEncryptVersionMap[ver] = v
	return v
}

func init() {
	version.SetClassVersions(safeEncryptVersionName, safeEncryptVersionMap)
}

/*
** Main
 */

// SafeEncrypt pairs symmetrically encrypted Data with the Key material
// needed to recover the symmetric key. For Seal the Key is the RSA encrypted
// key and IV; for SealWithPassword it is the serialized KDF parameters.
type SafeEncrypt struct {
	Key  []byte
	Data []byte
}

// Seal encrypts plaintext under a fresh symmetric key and wraps that key for
// publicKey.
func Seal(plaintext, publicKey []byte) (*SafeEncrypt, error) {
	secret := random.Block(symm.KeySize + symm.IVSize)
	defer utils.Wipe(secret)

	key, iv, err := symm.SplitKeyIV(secret)
	if err != nil {
		return nil, err
	}
	data, err := symm.Encrypt(plaintext, key, iv)
	if err != nil {
		return nil, err
	}
	wrapped, err := asymm.Encrypt(secret, publicKey)
	if err != nil {
		return nil, err
	}
	return &SafeEncrypt{Key: wrapped, Data: data}, nil
}

// Open reverses Seal with the private key matching the sealing public key.
func (s *SafeEncrypt) Open(privateKey []byte) ([]byte, error) {
	secret, err := asymm.Decrypt(s.Key, privateKey)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(secret)

	key, iv, err := symm.SplitKeyIV(secret)
	if err != nil {
		return nil, err
	}
	return symm.Decrypt(s.Data, key, iv)
}

// SealWithPassword encrypts plaintext under a key derived from password by a
// freshly salted KDF of kdfType.
func SealWithPassword(plaintext, password []byte, kdfType *kdf.KdfType) (*SafeEncrypt, error) {
	k, err := kdf.New(kdfType)
	if err != nil {
		return nil, err
	}
	key, iv, err := k.DeriveKeyIV(password)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(key)

	data, err := symm.Encrypt(plaintext, key, iv)
	if err != nil {
		return nil, err
	}
	params, err := k.Serialize()
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "serializing kdf parameters")
	}
	return &SafeEncrypt{Key: params, Data: data}, nil
}

func (s *SafeEncrypt) OpenWithPassword(password []byte) ([]byte, error) {
	k, err := kdf.DeserializeKdf(s.Key)
	if err != nil {
		return nil, err
	}
	key, iv, err := k.DeriveKeyIV(password)
	if err != nil {
		return nil, err
	}
	defer utils.Wipe(key)

	return symm.Decrypt(s.Data, key, iv)
}

// The serialization/deserialization format is as follows:
//
// Version 1:
//  ------------------------------------------------------------------
// | version(4 bytes) | keyLen(4 bytes) | key | dataLen(4 bytes) | data |
//  ------------------------------------------------------------------
//

func (s *SafeEncrypt) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(version.Serialize(curSafeEncryptVersion))
	if err := utils.WriteField(buf, s.Key); err != nil {
		return nil, err
	}
	if err := utils.WriteField(buf, s.Data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DeserializeSafeEncrypt(data []byte) (*SafeEncrypt, error) {
	genericVer, err := version.Deserialize(safeEncryptVersionName, data)
	if err != nil {
		return nil, cryptoerr.Invalid(domain, "reading safe encrypt version: %v", err)
	}
	ver := genericVer.(*SafeEncryptVersion)
	buf := bytes.NewBuffer(data[version.VersionSerialSize:])

	switch ver {
	case SAFE_ENCRYPT_VERSION_ONE:
		key, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing safe encrypt key: %v", err)
		}
		payload, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing safe encrypt data: %v", err)
		}
		if buf.Len() != 0 {
			return nil, cryptoerr.Invalid(domain, "%d trailing bytes after safe encrypt record", buf.Len())
		}
		return &SafeEncrypt{Key: key, Data: payload}, nil
	}
	return nil, cryptoerr.Invalid(domain, "invalid safe encrypt version: %v", ver.GetVersion())
}

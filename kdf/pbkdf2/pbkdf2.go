package pbkdf2

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/hashtype"
	. "github.com/overnest/safecrypto-go/interfaces"
	"github.com/overnest/safecrypto-go/random"
	"github.com/overnest/safecrypto-go/symm"
	"github.com/overnest/safecrypto-go/utils"
	"github.com/overnest/safecrypto-go/version"
)

const (
	domain          = "pbkdf2"
	versionTypeName = "Pbkdf2Version"
	defaultIter     = uint32(100000)
	defaultSaltLen  = 16

	// pinIterBase is both the minimum iteration count and the modulus applied
	// to the pin.
	pinIterBase = 10000

	// MaxIterations bounds the iteration count read from a serialized record.
	MaxIterations = uint32(5000000)

	// SecretSize is the length of a SecurePassword result: one symm key and IV.
	SecretSize = symm.KeySize + symm.IVSize
)

var (
	defaultHashType = hashtype.TypeSha512
)

// SecurePassword stretches a low entropy password into key and IV material
// for the symm package. The pin only sets the cost, between 10000 and 19999
// iterations of PBKDF2-HMAC-SHA512 over salt||label.
//
// Salt and label are concatenated without a separator, so ("ab", "c") and
// ("a", "bc") derive the same secret. Callers choose fixed width encodings
// when that matters.
func SecurePassword(password, salt []byte, pin uint32, label []byte) ([]byte, error) {
	if len(password) == 0 || len(salt) == 0 || pin == 0 || len(label) == 0 {
		return nil, cryptoerr.Invalid(domain, "password, salt and label must be non-empty and pin non-zero")
	}
	iter := int(pin%pinIterBase) + pinIterBase

	context := make([]byte, 0, len(salt)+len(label))
	context = append(context, salt...)
	context = append(context, label...)

	return pbkdf2.Key(password, context, iter, SecretSize, defaultHashType.HashFunc), nil
}

/*
** Version
 */

var (
	VERSION_ONE = newPbkdf2Version("ONE", 1)
	curVersion  = VERSION_ONE
)

type Pbkdf2Version struct {
	Name    string
	Version version.Version
}

func (kv *Pbkdf2Version) GetVersion() version.Version {
	return kv.Version
}

var versionMap = make(map[int32]version.VersionInterface)

func newPbkdf2Version(name string, ver int32) *Pbkdf2Version {
	kdfVersion := &Pbkdf2Version{name, version.Version(ver)}
	versionMap[ver] = kdfVersion
	return kdfVersion
}

func init() {
	version.SetClassVersions(versionTypeName, versionMap)
}

/*
** Main
 */

type Pbkdf2 struct {
	version  *Pbkdf2Version
	hashType *hashtype.HashType
	salt     []byte
	iter     uint32
}

func (_ *Pbkdf2) New() (KdfBase, error) {
	return &Pbkdf2{
		version:  curVersion,
		hashType: defaultHashType,
		salt:     random.Block(defaultSaltLen),
		iter:     defaultIter,
	}, nil
}

// The serialization/deserialization format is as follows:
//
// Version 1:
//  -----------------------------------------------------------------------
// | version(4 bytes) | saltLen(4 bytes) | salt | iter(4 bytes) | hashType |
//  -----------------------------------------------------------------------
//

func (_ *Pbkdf2) Deserialize(data []byte) (KdfBase, error) {
	genericVer, err := version.Deserialize(versionTypeName, data)
	if err != nil {
		return nil, err
	}
	ver := genericVer.(*Pbkdf2Version)
	buf := bytes.NewBuffer(data[version.VersionSerialSize:])
	result := &Pbkdf2{version: ver}

	switch ver {
	case VERSION_ONE:
		salt, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing pbkdf2 salt: %v", err)
		}
		result.salt = salt

		if err := binary.Read(buf, binary.BigEndian, &result.iter); err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing pbkdf2 iterations: %v", err)
		}
		if result.iter == 0 || result.iter > MaxIterations {
			return nil, cryptoerr.Invalid(domain, "pbkdf2 iterations %d outside [1, %d]", result.iter, MaxIterations)
		}

		hashType, err := hashtype.DeserializeHashType(buf.Bytes())
		if err != nil {
			return nil, err
		}
		result.hashType = hashType
	default:
		return nil, cryptoerr.Invalid(domain, "unknown pbkdf2 version %v", ver.GetVersion())
	}
	return result, nil
}

func (k *Pbkdf2) Serialize() ([]byte, error) {
	switch k.version {
	case VERSION_ONE:
		buf := bytes.NewBuffer(version.Serialize(k.version))
		if err := utils.WriteField(buf, k.salt); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.BigEndian, k.iter); err != nil {
			return nil, err
		}
		hash, err := k.hashType.Serialize()
		if err != nil {
			return nil, err
		}
		buf.Write(hash)
		return buf.Bytes(), nil
	}
	return nil, cryptoerr.Primitive(domain, nil, "cannot serialize pbkdf2 parameters with invalid version")
}

func (k *Pbkdf2) GenerateKey(password []byte, keyLen int) ([]byte, error) {
	if len(password) == 0 || keyLen <= 0 {
		return nil, cryptoerr.Invalid(domain, "empty password or non-positive key length %d", keyLen)
	}
	return pbkdf2.Key(password, k.salt, int(k.iter), keyLen, k.hashType.HashFunc), nil
}

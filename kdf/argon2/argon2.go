package argon2

import (
	"bytes"
	"encoding/binary"

	xargon2 "golang.org/x/crypto/argon2"

	"github.com/overnest/safecrypto-go/cryptoerr"
	. "github.com/overnest/safecrypto-go/interfaces"
	"github.com/overnest/safecrypto-go/random"
	"github.com/overnest/safecrypto-go/utils"
	"github.com/overnest/safecrypto-go/version"
)

const (
	domain          = "argon2"
	versionTypeName = "Argon2Version"
	defaultIter     = uint32(1)
	defaultMemory   = uint32(64 * 1024)
	defaultThreads  = uint8(1)
	defaultSaltLen  = 16

	// Upper bounds on parameters read from a serialized record. Memory is in
	// KiB, so MaxMemory is 1 GiB.
	MaxIterations = uint32(16)
	MaxMemory     = uint32(1 << 20)
)

/*
** Version
 */
var (
	VERSION_ONE = newArgon2Version("ONE", 1)
	curVersion  = VERSION_ONE
)

type Argon2Version struct {
	Name    string
	Version version.Version
}

func (kv *Argon2Version) GetVersion() version.Version {
	return kv.Version
}

var versionMap = make(map[int32]version.VersionInterface)

func newArgon2Version(name string, ver int32) *Argon2Version {
	kdfVersion := &Argon2Version{name, version.Version(ver)}
	versionMap[ver] = kdfVersion
	return kdfVersion
}

func init() {
	version.SetClassVersions(versionTypeName, versionMap)
}

/*
** Main
 */
type Argon2 struct {
	version *Argon2Version
	salt    []byte
	iter    uint32
	memory  uint32
}

func (_ *Argon2) New() (KdfBase, error) {
	return &Argon2{
		version: curVersion,
		salt:    random.Block(defaultSaltLen),
		iter:    defaultIter,
		memory:  defaultMemory,
	}, nil
}

// The serialization/deserialization format is as follows:
//
// Version 1:
//  ---------------------------------------------------------------------------------
// | version(4 bytes) | saltLen(4 bytes) | salt | iter(4 bytes) | memory(4 bytes) |
//  ---------------------------------------------------------------------------------

func (_ *Argon2) Deserialize(data []byte) (KdfBase, error) {
	genericVer, err := version.Deserialize(versionTypeName, data)
	if err != nil {
		return nil, err
	}
	ver := genericVer.(*Argon2Version)
	buf := bytes.NewBuffer(data[version.VersionSerialSize:])
	result := &Argon2{version: ver}

	switch ver {
	case VERSION_ONE:
		salt, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing argon2 salt: %v", err)
		}
		result.salt = salt
		if err := binary.Read(buf, binary.BigEndian, &result.iter); err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing argon2 iterations: %v", err)
		}
		if err := binary.Read(buf, binary.BigEndian, &result.memory); err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing argon2 memory: %v", err)
		}
		if result.iter == 0 || result.iter > MaxIterations {
			return nil, cryptoerr.Invalid(domain, "argon2 iterations %d outside [1, %d]", result.iter, MaxIterations)
		}
		if result.memory == 0 || result.memory > MaxMemory {
			return nil, cryptoerr.Invalid(domain, "argon2 memory %d KiB outside [1, %d]", result.memory, MaxMemory)
		}
	default:
		return nil, cryptoerr.Invalid(domain, "unknown argon2 version %v", ver.GetVersion())
	}
	return result, nil
}

func (k *Argon2) Serialize() ([]byte, error) {
	switch k.version {
	case VERSION_ONE:
		buf := bytes.NewBuffer(version.Serialize(k.version))
		if err := utils.WriteField(buf, k.salt); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.BigEndian, k.iter); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.BigEndian, k.memory); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, cryptoerr.Primitive(domain, nil, "cannot serialize argon2 parameters with invalid version")
}

func (k *Argon2) GenerateKey(password []byte, keyLen int) ([]byte, error) {
	if len(password) == 0 || keyLen <= 0 {
		return nil, cryptoerr.Invalid(domain, "empty password or non-positive key length %d", keyLen)
	}
	return xargon2.IDKey(password, k.salt, k.iter, k.memory, defaultThreads, uint32(keyLen)), nil
}

package version

import (
	"encoding/binary"
	"sync"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	VersionSerialSize = 4

	domain = "version"
)

var (
	classVersionMu  sync.RWMutex
	classVersionMap = make(map[string]map[int32]VersionInterface)
)

// Version is the format revision written at the head of every serialized record.
type Version int32

func (v Version) Serialize() []byte {
	data := make([]byte, VersionSerialSize)
	binary.LittleEndian.PutUint32(data, uint32(v))
	return data
}

func (v Version) GetVersion() int32 {
	return int32(v)
}

type VersionInterface interface {
	GetVersion() Version
}

// SetClassVersions registers the known versions of a serialized class. It is
// meant to be called from package init functions.
func SetClassVersions(className string, versionMap map[int32]VersionInterface) error {
	classVersionMu.Lock()
	defer classVersionMu.Unlock()
	if _, exists := classVersionMap[className]; exists {
		return cryptoerr.Invalid(domain, "duplicate version class name: %v", className)
	}
	classVersionMap[className] = versionMap
	return nil
}

func GetClassVersion(className string, version Version) (VersionInterface, error) {
	classVersionMu.RLock()
	defer classVersionMu.RUnlock()
	classVersions, exists := classVersionMap[className]
	if !exists {
		return nil, cryptoerr.Invalid(domain, "cannot find versions for class %v", className)
	}
	ver, exists := classVersions[version.GetVersion()]
	if !exists {
		return nil, cryptoerr.Invalid(domain, "cannot find version %v for class %v", version, className)
	}
	return ver, nil
}

func Serialize(ver VersionInterface) []byte {
	return ver.GetVersion().Serialize()
}

func Deserialize(className string, data []byte) (VersionInterface, error) {
	if len(data) < VersionSerialSize {
		return nil, cryptoerr.Invalid(domain, "need %v bytes to deserialize %v version, have %v",
			VersionSerialSize, className, len(data))
	}
	ver := Version(binary.LittleEndian.Uint32(data[:VersionSerialSize]))
	return GetClassVersion(className, ver)
}

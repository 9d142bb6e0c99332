package envelope

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/utils"
	"github.com/overnest/safecrypto-go/version"
)

/*
** Version
 */

const (
	versionRecordVersionName = "VersionRecordVersion"
)

var (
	RECORD_VERSION_ONE = newRecordVersion("ONE", 1)
	curRecordVersion   = RECORD_VERSION_ONE
)

type RecordVersion struct {
	Name    string
	Version version.Version
}

func (v *RecordVersion) GetVersion() version.Version {
	return v.Version
}

var recordVersionMap = make(map[int32]version.VersionInterface)

func newRecordVersion(name string, ver int32) *RecordVersion {
	v := &RecordVersion{name, version.Version(ver)}
	recordVersionMap[ver] = v
	return v
}

func init() {
	version.SetClassVersions(versionRecordVersionName, recordVersionMap)
}

/*
** Main
 */

// VersionRecord identifies one revision of a stored object. ForkingChildCount
// is nil when the revision has never been branched.
type VersionRecord struct {
	Index             uint64
	ID                []byte
	ForkingChildCount *uint32
}

func (r *VersionRecord) String() string {
	if r.ForkingChildCount == nil {
		return fmt.Sprintf("%d-%x", r.Index, r.ID)
	}
	return fmt.Sprintf("%d-%x/%d", r.Index, r.ID, *r.ForkingChildCount)
}

// The serialization/deserialization format is as follows:
//
// Version 1:
//  ------------------------------------------------------------------------------------
// | version(4 bytes) | index(8 bytes) | idLen(4 bytes) | id | hasCount(1 byte) | count? |
//  ------------------------------------------------------------------------------------
//
// count is a big endian uint32 present only when hasCount is 1.
//

func (r *VersionRecord) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(version.Serialize(curRecordVersion))
	if err := binary.Write(buf, binary.BigEndian, r.Index); err != nil {
		return nil, err
	}
	if err := utils.WriteField(buf, r.ID); err != nil {
		return nil, err
	}
	if r.ForkingChildCount == nil {
		buf.WriteByte(0)
		return buf.Bytes(), nil
	}
	buf.WriteByte(1)
	if err := binary.Write(buf, binary.BigEndian, *r.ForkingChildCount); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DeserializeVersionRecord(data []byte) (*VersionRecord, error) {
	genericVer, err := version.Deserialize(versionRecordVersionName, data)
	if err != nil {
		return nil, cryptoerr.Invalid(domain, "reading version record version: %v", err)
	}
	ver := genericVer.(*RecordVersion)
	buf := bytes.NewBuffer(data[version.VersionSerialSize:])
	result := &VersionRecord{}

	switch ver {
	case RECORD_VERSION_ONE:
		if err := binary.Read(buf, binary.BigEndian, &result.Index); err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing version index: %v", err)
		}
		id, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing version id: %v", err)
		}
		result.ID = id

		hasCount, err := buf.ReadByte()
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing forking child flag: %v", err)
		}
		switch hasCount {
		case 0:
		case 1:
			var count uint32
			if err := binary.Read(buf, binary.BigEndian, &count); err != nil {
				return nil, cryptoerr.Invalid(domain, "deserializing forking child count: %v", err)
			}
			result.ForkingChildCount = &count
		default:
			return nil, cryptoerr.Invalid(domain, "bad forking child flag %d", hasCount)
		}
		if buf.Len() != 0 {
			return nil, cryptoerr.Invalid(domain, "%d trailing bytes after version record", buf.Len())
		}
		return result, nil
	}
	return nil, cryptoerr.Invalid(domain, "invalid version record version: %v", ver.GetVersion())
}

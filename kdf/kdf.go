// Package kdf registers the password based key derivations and binds them to
// the symmetric cipher: a Kdf derives exactly one symm key and IV from a
// password, and serializes the parameters needed to derive them again.
package kdf

import (
	"bytes"

	"github.com/overnest/safecrypto-go/cryptoerr"
	. "github.com/overnest/safecrypto-go/interfaces"
	"github.com/overnest/safecrypto-go/kdf/argon2"
	"github.com/overnest/safecrypto-go/kdf/pbkdf2"
	"github.com/overnest/safecrypto-go/symm"
	"github.com/overnest/safecrypto-go/utils"
	"github.com/overnest/safecrypto-go/version"
)

const domain = "kdf"

/*
** TYPES
 */

var (
	Type_Pbkdf2 = newKdfType("PBKDF2", &pbkdf2.Pbkdf2{})
	Type_Argon2 = newKdfType("ARGON2", &argon2.Argon2{})
)

type KdfType struct {
	Name string
	Type KdfBase
}

var typeMap = make(map[string]*KdfType)

func newKdfType(name string, rType KdfBase) *KdfType {
	kdfType := &KdfType{name, rType}
	typeMap[name] = kdfType
	return kdfType
}

func TypeFromName(name string) *KdfType {
	return typeMap[name]
}

/*
** VERSIONS
 */

const (
	versionTypeName = "KdfVersion"
)

var (
	VERSION_ONE = newKdfVersion("ONE", 1)
	curVersion  = VERSION_ONE
)

type KdfVersion struct {
	Name    string
	Version version.Version
}

func (kv *KdfVersion) GetVersion() version.Version {
	return kv.Version
}

var kdfVersionMap = make(map[int32]version.VersionInterface)

func newKdfVersion(name string, ver int32) *KdfVersion {
	kdfVersion := &KdfVersion{name, version.Version(ver)}
	kdfVersionMap[ver] = kdfVersion
	return kdfVersion
}

func init() {
	version.SetClassVersions(versionTypeName, kdfVersionMap)
}

/*
** MAIN
 */

type Kdf struct {
	Type    *KdfType
	Version *KdfVersion
	Kdf     KdfBase
}

func New(kdfType *KdfType) (*Kdf, error) {
	if kdfType == nil {
		return nil, cryptoerr.Invalid(domain, "nil kdf type")
	}
	kdf, err := kdfType.Type.New()
	if err != nil {
		return nil, err
	}
	return &Kdf{
		Type:    kdfType,
		Version: curVersion,
		Kdf:     kdf,
	}, nil
}

// The serialization/deserialization format is as follows:
//
// Version 1:
//  ----------------------------------------------------------------------------------
// | version(4 bytes) | kdfTypeLen(4 bytes) | kdfType | kdfDataLen(4 bytes) | kdfData |
//  ----------------------------------------------------------------------------------
//
// For format of the "kdfData" portion will depend on the kdf type.
//

func (k *Kdf) Serialize() ([]byte, error) {
	switch k.Version {
	case VERSION_ONE:
		buf := bytes.NewBuffer(version.Serialize(k.Version))
		if err := utils.WriteField(buf, []byte(k.Type.Name)); err != nil {
			return nil, err
		}
		kdfData, err := k.Kdf.Serialize()
		if err != nil {
			return nil, err
		}
		if err := utils.WriteField(buf, kdfData); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, cryptoerr.Primitive(domain, nil, "cannot serialize kdf with invalid version")
}

func DeserializeKdf(data []byte) (*Kdf, error) {
	genericVer, err := version.Deserialize(versionTypeName, data)
	if err != nil {
		return nil, err
	}
	ver := genericVer.(*KdfVersion)
	buf := bytes.NewBuffer(data[version.VersionSerialSize:])
	result := &Kdf{Version: ver}

	switch ver {
	case VERSION_ONE:
		typeName, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing kdf type name: %v", err)
		}
		kdfType, ok := typeMap[string(typeName)]
		if !ok {
			return nil, cryptoerr.Invalid(domain, "cannot find kdf type with name: %v", string(typeName))
		}
		result.Type = kdfType

		kdfData, err := utils.ReadField(buf)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "deserializing kdf data: %v", err)
		}
		kdf, err := kdfType.Type.Deserialize(kdfData)
		if err != nil {
			return nil, err
		}
		result.Kdf = kdf
	default:
		return nil, cryptoerr.Invalid(domain, "invalid kdf version: %v", ver.GetVersion())
	}
	return result, nil
}

// DeriveKeyIV derives a symm key and IV from password.
func (k *Kdf) DeriveKeyIV(password []byte) (key, iv []byte, err error) {
	secret, err := k.Kdf.GenerateKey(password, symm.KeySize+symm.IVSize)
	if err != nil {
		return nil, nil, err
	}
	return symm.SplitKeyIV(secret)
}

package asymm

import (
	"crypto/rsa"
	"crypto/x509"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

// Keys travel as self-describing DER: PKCS#8 for private keys and PKIX
// SubjectPublicKeyInfo for public keys, so each half can be rebuilt on its own.

func EncodePrivateKey(key *rsa.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, cryptoerr.Invalid(domain, "nil private key")
	}
	data, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "encoding private key")
	}
	return data, nil
}

func DecodePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	if len(data) == 0 {
		return nil, cryptoerr.Invalid(domain, "empty private key")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(data)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "decoding private key")
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, cryptoerr.Primitive(domain, nil, "private key is %T, not RSA", parsed)
	}
	return key, nil
}

func EncodePublicKey(key *rsa.PublicKey) ([]byte, error) {
	if key == nil {
		return nil, cryptoerr.Invalid(domain, "nil public key")
	}
	data, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "encoding public key")
	}
	return data, nil
}

func DecodePublicKey(data []byte) (*rsa.PublicKey, error) {
	if len(data) == 0 {
		return nil, cryptoerr.Invalid(domain, "empty public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "decoding public key")
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, cryptoerr.Primitive(domain, nil, "public key is %T, not RSA", parsed)
	}
	return key, nil
}

// PublicKeyFor derives the encoded public key matching an encoded private key.
func PublicKeyFor(privateKey []byte) ([]byte, error) {
	key, err := DecodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return EncodePublicKey(&key.PublicKey)
}

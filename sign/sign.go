// Package sign implements RSASSA-PKCS1-v1_5 signatures over SHA-512.
package sign

import (
	"crypto/rsa"

	"github.com/overnest/safecrypto-go/asymm"
	"github.com/overnest/safecrypto-go/cryptoerr"
	"github.com/overnest/safecrypto-go/hashtype"
)

const domain = "sign"

var hashType = hashtype.TypeSha512

// Sign signs data with an encoded private key. PKCS#1 v1.5 signing is
// deterministic and reads no randomness.
func Sign(data, privateKey []byte) ([]byte, error) {
	if len(data) == 0 || len(privateKey) == 0 {
		return nil, cryptoerr.Invalid(domain, "empty key or input")
	}
	priv, err := asymm.DecodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	signature, err := rsa.SignPKCS1v15(nil, priv, hashType.Hash, hashType.Sum(data))
	if err != nil {
		return nil, cryptoerr.Primitive(domain, err, "signing")
	}
	return signature, nil
}

// Verify checks signature over data against an encoded public key. Every
// failure, including a malformed key or a signature of the wrong length,
// matches cryptoerr.ErrVerification.
func Verify(data, signature, publicKey []byte) error {
	pub, err := asymm.DecodePublicKey(publicKey)
	if err != nil {
		return cryptoerr.Verification(domain, err, "unusable public key")
	}
	if len(signature) != pub.Size() {
		return cryptoerr.Verification(domain, nil, "signature is %d bytes, key expects %d", len(signature), pub.Size())
	}
	if err := rsa.VerifyPKCS1v15(pub, hashType.Hash, hashType.Sum(data), signature); err != nil {
		return cryptoerr.Verification(domain, err, "signature mismatch")
	}
	return nil
}

// Check reports whether signature is valid for data under publicKey.
func Check(data, signature, publicKey []byte) bool {
	return Verify(data, signature, publicKey) == nil
}

package commands

import (
	"crypto/rsa"
	"encoding/pem"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.step.sm/crypto/pemutil"

	"github.com/overnest/safecrypto-go/asymm"
)

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// writeKey stores key as PEM: PKCS#8 for private keys, PKIX for public keys.
func writeKey(path string, key any, perm os.FileMode) error {
	block, err := pemutil.Serialize(key, pemutil.WithPKCS8(true))
	if err != nil {
		return err
	}
	return os.WriteFile(path, pem.EncodeToMemory(block), perm)
}

func readPrivateKey(path string) ([]byte, error) {
	key, err := readKey(path)
	if err != nil {
		return nil, err
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%v does not hold an RSA private key", path)
	}
	return asymm.EncodePrivateKey(priv)
}

func readPublicKey(path string) ([]byte, error) {
	key, err := readKey(path)
	if err != nil {
		return nil, err
	}
	switch k := key.(type) {
	case *rsa.PublicKey:
		return asymm.EncodePublicKey(k)
	case *rsa.PrivateKey:
		return asymm.EncodePublicKey(&k.PublicKey)
	}
	return nil, fmt.Errorf("%v does not hold an RSA key", path)
}

func readKey(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pemutil.ParseKey(data)
}

package commands

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	safecrypto "github.com/overnest/safecrypto-go"
)

// sign --key <pem>: print a base64 signature of the input.
func signCmd() *cobra.Command {
	var keyPath string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign input with a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := readPrivateKey(keyPath)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, inPath)
			if err != nil {
				return err
			}
			signature, err := safecrypto.AsymSign(data, priv)
			if err != nil {
				return err
			}
			encoded := base64.StdEncoding.EncodeToString(signature) + "\n"
			return writeOutput(cmd, outPath, []byte(encoded))
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "private key PEM file")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// verify --pub <pem> <signature>: check a base64 signature of the input.
func verifyCmd() *cobra.Command {
	var pubPath string
	cmd := &cobra.Command{
		Use:   "verify <signature>",
		Short: "Verify a base64 signature of the input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := readPublicKey(pubPath)
			if err != nil {
				return err
			}
			signature, err := base64.StdEncoding.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("decoding signature: %w", err)
			}
			data, err := readInput(cmd, inPath)
			if err != nil {
				return err
			}
			if !safecrypto.AsymCheckSig(data, signature, pub) {
				return fmt.Errorf("signature is not valid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&pubPath, "pub", "", "public key PEM file")
	_ = cmd.MarkFlagRequired("pub")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overnest/safecrypto-go/envelope"
	"github.com/overnest/safecrypto-go/kdf"
)

func sealCmd() *cobra.Command {
	var (
		pubPath  string
		password string
		kdfName  string
	)
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt input for a public key (--pub) or with a password (--password)",
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := readInput(cmd, inPath)
			if err != nil {
				return err
			}

			var sealed *envelope.SafeEncrypt
			switch {
			case pubPath != "" && password != "":
				return fmt.Errorf("--pub and --password are mutually exclusive")
			case pubPath != "":
				pub, err := readPublicKey(pubPath)
				if err != nil {
					return err
				}
				sealed, err = envelope.Seal(plaintext, pub)
				if err != nil {
					return err
				}
			case password != "":
				kdfType := kdf.TypeFromName(kdfName)
				if kdfType == nil {
					return fmt.Errorf("no kdf named %v", kdfName)
				}
				sealed, err = envelope.SealWithPassword(plaintext, []byte(password), kdfType)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --pub or --password is required")
			}

			serial, err := sealed.Serialize()
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, serial)
		},
	}
	cmd.Flags().StringVar(&pubPath, "pub", "", "recipient public key PEM file")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to derive the key from")
	cmd.Flags().StringVar(&kdfName, "kdf", kdf.Type_Argon2.Name, "key derivation for --password (PBKDF2 or ARGON2)")
	return cmd
}

func openCmd() *cobra.Command {
	var (
		keyPath  string
		password string
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt input sealed by the seal command",
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := readInput(cmd, inPath)
			if err != nil {
				return err
			}
			sealed, err := envelope.DeserializeSafeEncrypt(serial)
			if err != nil {
				return err
			}

			var plaintext []byte
			switch {
			case keyPath != "":
				priv, err := readPrivateKey(keyPath)
				if err != nil {
					return err
				}
				plaintext, err = sealed.Open(priv)
				if err != nil {
					return err
				}
			case password != "":
				plaintext, err = sealed.OpenWithPassword([]byte(password))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --key or --password is required")
			}
			return writeOutput(cmd, outPath, plaintext)
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "private key PEM file")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password the input was sealed with")
	return cmd
}

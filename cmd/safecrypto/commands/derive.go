package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	safecrypto "github.com/overnest/safecrypto-go"
)

func deriveCmd() *cobra.Command {
	var (
		password string
		salt     string
		label    string
		pin      uint32
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an AES-256 key and IV from a password, salt, pin and label",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := safecrypto.SecurePassword([]byte(password), []byte(salt), pin, []byte(label))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "key %s\n", hex.EncodeToString(secret[:safecrypto.AES256KeySize]))
			fmt.Fprintf(out, "iv  %s\n", hex.EncodeToString(secret[safecrypto.AES256KeySize:]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&salt, "salt", "", "salt")
	cmd.Flags().StringVar(&label, "label", "", "label appended to the salt")
	cmd.Flags().Uint32Var(&pin, "pin", 0, "non-zero pin selecting the iteration count")
	return cmd
}

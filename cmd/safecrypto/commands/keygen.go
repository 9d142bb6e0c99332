package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	safecrypto "github.com/overnest/safecrypto-go"
	"github.com/overnest/safecrypto-go/asymm"
)

func keygenCmd() *cobra.Command {
	var bits int
	cmd := &cobra.Command{
		Use:   "keygen <name>",
		Short: "Generate an RSA key pair into <name>.key and <name>.pub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp := &safecrypto.RsaKeyPair{}
			if err := kp.GenerateKeys(bits); err != nil {
				return err
			}
			defer kp.ClearKeys()

			priv, err := asymm.DecodePrivateKey(kp.PrivateKey())
			if err != nil {
				return err
			}
			name := args[0]
			if err := writeKey(name+".key", priv, 0o600); err != nil {
				return err
			}
			if err := writeKey(name+".pub", &priv.PublicKey, 0o644); err != nil {
				return err
			}
			log.WithField("bits", bits).WithField("name", name).Debug("key pair written")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s.key and %s.pub\n", name, name)
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", safecrypto.DefaultKeySize, "RSA modulus size in bits")
	return cmd
}

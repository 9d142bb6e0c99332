package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	safecrypto "github.com/overnest/safecrypto-go"
)

func randomCmd() *cobra.Command {
	var (
		size int
		bits int
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random bytes as hex, or a random number with --bits",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if bits > 0 {
				fmt.Fprintln(out, safecrypto.RandomNumber(bits).String())
				return nil
			}
			if size < 0 {
				return fmt.Errorf("size must not be negative")
			}
			fmt.Fprintln(out, hex.EncodeToString(safecrypto.RandomBlock(size)))
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 32, "number of random bytes")
	cmd.Flags().IntVar(&bits, "bits", 0, "print a random number below 2^bits instead")
	return cmd
}

package commands

import (
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
)

var log = logger.GetGoI2PLogger()

var (
	inPath  string
	outPath string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "safecrypto",
		Short:        "Encryption, signing and key derivation over files",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&inPath, "in", "i", "-", "input file")
	root.PersistentFlags().StringVarP(&outPath, "out", "o", "-", "output file")

	root.AddCommand(
		keygenCmd(),
		sealCmd(),
		openCmd(),
		signCmd(),
		verifyCmd(),
		deriveCmd(),
		randomCmd(),
		serveCmd(),
	)
	return root
}

package main

import (
	"os"

	"github.com/overnest/safecrypto-go/cmd/safecrypto/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

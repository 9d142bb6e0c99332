// Package commands defines the safecrypto CLI.
//
// Commands
//
//   - keygen   Generate an RSA key pair as PEM files
//   - seal     Encrypt a file for a public key or with a password
//   - open     Decrypt a sealed file
//   - sign     Sign a file with a private key
//   - verify   Check a signature against a public key
//   - derive   Derive key and IV material from a password
//   - random   Print random bytes or a random number
//   - serve    Run the JSON over HTTP service
//
// Inputs and outputs are file paths; "-" stands for stdin or stdout.
package commands

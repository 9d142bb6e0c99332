package service

import (
	safecrypto "github.com/overnest/safecrypto-go"
	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	defaultAddress        = "localhost:8084"
	defaultMaxKeySize     = 4096
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxOutputBytes = 16 << 20
)

// Config controls the HTTP surface. The primitives themselves take no
// configuration.
type Config struct {
	Address        string
	AllowedOrigins []string
	DefaultKeySize int
	MaxKeySize     int
	MaxBodyBytes   int64
	MaxOutputBytes int64
}

func DefaultConfig() Config {
	return Config{
		Address:        defaultAddress,
		AllowedOrigins: []string{"*"},
		DefaultKeySize: safecrypto.DefaultKeySize,
		MaxKeySize:     defaultMaxKeySize,
		MaxBodyBytes:   defaultMaxBodyBytes,
		MaxOutputBytes: defaultMaxOutputBytes,
	}
}

func (c Config) Validate() error {
	if c.Address == "" {
		return cryptoerr.Invalid(domain, "empty listen address")
	}
	if c.DefaultKeySize < safecrypto.MinKeySize {
		return cryptoerr.Invalid(domain, "default key size %d below minimum %d",
			c.DefaultKeySize, safecrypto.MinKeySize)
	}
	if c.MaxKeySize < c.DefaultKeySize || c.MaxKeySize > safecrypto.MaxKeySize {
		return cryptoerr.Invalid(domain, "max key size %d outside [%d, %d]",
			c.MaxKeySize, c.DefaultKeySize, safecrypto.MaxKeySize)
	}
	if c.MaxBodyBytes <= 0 {
		return cryptoerr.Invalid(domain, "max body size must be positive, got %d", c.MaxBodyBytes)
	}
	if c.MaxOutputBytes <= 0 {
		return cryptoerr.Invalid(domain, "max output size must be positive, got %d", c.MaxOutputBytes)
	}
	return nil
}

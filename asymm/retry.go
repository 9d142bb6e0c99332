package asymm

import (
	"github.com/overnest/safecrypto-go/cryptoerr"
)

// MaxAttempts bounds how often a randomized operation is tried when the
// random source reports a transient failure.
const MaxAttempts = 3

// WithRetry runs attempt until it succeeds, fails with a non-transient error,
// or MaxAttempts transient failures have been seen.
func WithRetry(domain string, attempt func() ([]byte, error)) ([]byte, error) {
	var last error
	for i := 0; i < MaxAttempts; i++ {
		result, err := attempt()
		if err == nil {
			return result, nil
		}
		if !cryptoerr.IsTransient(err) {
			return nil, err
		}
		log.WithField("domain", domain).WithField("attempt", i+1).WithError(err).
			Debug("transient entropy failure, retrying")
		last = err
	}
	return nil, cryptoerr.Exhausted(domain, MaxAttempts, last)
}

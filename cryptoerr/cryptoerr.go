// Package cryptoerr holds the failure classes shared by every primitive.
//
// Each primitive reports one of the sentinels below, wrapped in an oops error
// that carries the primitive's domain and a short code. Callers match on the
// sentinel with errors.Is; the underlying library error, when there is one, is
// joined in so it stays inspectable without leaking as the primary error.
package cryptoerr

import (
	"errors"

	"github.com/samber/oops"
)

var (
	// ErrInvalidInput indicates a precondition on the arguments was violated
	// (empty or undersized input, out of range parameter).
	ErrInvalidInput = errors.New("safecrypto: invalid input")

	// ErrPrimitive indicates the underlying cryptographic or codec operation failed.
	ErrPrimitive = errors.New("safecrypto: primitive failure")

	// ErrEntropy indicates the entropy source could not be read. It is the only
	// transient class; randomized operations retry on it.
	ErrEntropy = errors.New("safecrypto: entropy source failure")

	// ErrRetriesExhausted indicates a randomized operation kept failing with
	// ErrEntropy until its attempt budget ran out.
	ErrRetriesExhausted = errors.New("safecrypto: retries exhausted")

	// ErrVerification indicates a signature did not verify.
	ErrVerification = errors.New("safecrypto: signature verification failed")
)

const (
	CodeInvalidInput     = "invalid_input"
	CodePrimitive        = "primitive_failure"
	CodeEntropy          = "entropy_failure"
	CodeRetriesExhausted = "retries_exhausted"
	CodeVerification     = "verification_failed"
)

// Invalid reports a precondition violation in domain.
func Invalid(domain, format string, args ...any) error {
	return oops.In(domain).Code(CodeInvalidInput).Wrapf(ErrInvalidInput, format, args...)
}

// Primitive reports a failure of the underlying operation in domain.
func Primitive(domain string, cause error, format string, args ...any) error {
	return oops.In(domain).Code(CodePrimitive).Wrapf(join(ErrPrimitive, cause), format, args...)
}

// Entropy reports an entropy source failure in domain.
func Entropy(domain string, cause error, format string, args ...any) error {
	return oops.In(domain).Code(CodeEntropy).Wrapf(join(ErrEntropy, cause), format, args...)
}

// Exhausted reports that attempts randomized tries all failed; last is the final cause.
func Exhausted(domain string, attempts int, last error) error {
	return oops.In(domain).
		Code(CodeRetriesExhausted).
		With("attempts", attempts).
		Wrapf(join(ErrRetriesExhausted, last), "gave up after %d attempts", attempts)
}

// Verification reports a failed signature check in domain.
func Verification(domain string, cause error, format string, args ...any) error {
	return oops.In(domain).Code(CodeVerification).Wrapf(join(ErrVerification, cause), format, args...)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrEntropy) && !errors.Is(err, ErrRetriesExhausted)
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Join(sentinel, cause)
}

package dsa

import "errors"

// Sentinel errors. Functions wrap them with additional context; use
// errors.Is() to test for a specific kind.
var (
	// ErrInvalidParameterSize is returned when the requested (L, N)
	// pair is not supported, or when the hash function is too short
	// for the requested N.
	ErrInvalidParameterSize = errors.New("dsa: invalid parameter size")

	// ErrGenerationExhausted is returned when a randomized search for
	// q, p, g or a signature ran out of attempts or out of time.
	ErrGenerationExhausted = errors.New("dsa: generation exhausted")

	// ErrNonInvertible is returned when a modular inverse does not
	// exist. This cannot happen with a prime modulus and a non-zero
	// input.
	ErrNonInvertible = errors.New("dsa: value is not invertible")

	// ErrInvalidSignatureEncoding is returned when r or s is outside
	// of [1, q-1], or when an encoded signature has the wrong length.
	ErrInvalidSignatureEncoding = errors.New("dsa: invalid signature encoding")

	// ErrInvalidParameters is returned when a parameter or key object
	// is nil, incomplete, or inconsistent.
	ErrInvalidParameters = errors.New("dsa: invalid parameters")

	// ErrInvalidHash is returned for unknown hash names and for hash
	// functions with a digest shorter than 160 bits.
	ErrInvalidHash = errors.New("dsa: invalid hash function")

	// ErrSeedMismatch is returned when the recorded seed values do not
	// reproduce the domain parameters.
	ErrSeedMismatch = errors.New("dsa: seed does not match parameters")
)

package dsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Signature is a DSA signature (r, s), with both values in [1, q-1].
type Signature struct {
	R, S *big.Int
}

// Sign a message using a given signing key.
//
//	- rng is the random source to use (nil to use the OS RNG)
//	- priv is the signing key (private)
//	- message is the message itself (it is hashed with h)
//	- h is the hash function (nil for the default for N)
//	- opts bounds the number of attempts and the time spent (may be nil)
//
// A fresh ephemeral value k is drawn for each signature, so signing the
// same message twice yields two different (and both valid) signatures.
// Using the OS RNG (i.e. setting rng to nil) is recommended. If an
// explicit random source is provided, then the caller MUST make sure that
// it provides sufficient entropy: reusing k reveals the private key.
func Sign(rng io.Reader, priv *PrivateKey, message []byte,
	h *Hash, opts *Options) (*Signature, error) {

	return SignContext(context.Background(), rng, priv, message, h, opts)
}

// SignContext is [Sign] with a context bounding the signing loop. When
// ctx is done before a signature is found, ErrGenerationExhausted is
// returned (wrapping the context error).
func SignContext(ctx context.Context, rng io.Reader, priv *PrivateKey,
	message []byte, h *Hash, opts *Options) (*Signature, error) {

	if priv == nil || priv.x == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrInvalidParameters)
	}
	if err := priv.checkShape(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.Reader
	}
	if h == nil {
		h = defaultHash(priv.N)
	}
	ctx, cancel := withBudget(ctx, opts)
	defer cancel()
	return signInner(ctx, rng, &priv.Parameters, priv.x, h.sumToInt(message), opts.maxAttempts())
}

// Sign is a shorthand for [Sign] with this key.
func (priv *PrivateKey) Sign(rng io.Reader, message []byte,
	h *Hash, opts *Options) (*Signature, error) {

	return Sign(rng, priv, message, h, opts)
}

// Inner signature function; e is the hashed message as an integer.
// Candidates with r = 0 or s = 0 are rejected and a new k is drawn.
func signInner(ctx context.Context, rng io.Reader, params *Parameters, x, e *big.Int,
	maxAttempts int) (*Signature, error) {

	p, q, g := params.P, params.Q, params.G
	kMax := new(big.Int).Sub(q, bigOne)
	sig, _, err := searchSequential(ctx, rng, maxAttempts, "signature",
		func(rng io.Reader) (*Signature, bool, error) {
			k, err := randRange(rng, bigOne, kMax)
			if err != nil {
				return nil, false, err
			}

			// r = (g^k mod p) mod q
			r := new(big.Int).Exp(g, k, p)
			r.Mod(r, q)
			if r.Sign() == 0 {
				return nil, false, nil
			}

			kInv, err := modInverse(k, q)
			if err != nil {
				return nil, false, err
			}

			// s = k^-1 * (e + x*r) mod q
			s := new(big.Int).Mul(x, r)
			s.Add(s, e)
			s.Mul(s, kInv)
			s.Mod(s, q)
			if s.Sign() == 0 {
				return nil, false, nil
			}
			return &Signature{R: r, S: s}, true, nil
		})
	if err != nil {
		return nil, err
	}
	return sig, nil
}

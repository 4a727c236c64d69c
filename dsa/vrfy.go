package dsa

import (
	"fmt"
	"math/big"
)

// Verify a DSA signature.
//
//	- pub is the verifying key (public)
//	- message is the signed message (it is hashed with h)
//	- sig is the signature to verify
//	- h is the hash function (nil for the default for N)
//
// Returned value is true for a valid signature, false otherwise. A
// malformed signature (r or s outside of [1, q-1]) or an incomplete key
// yields false; use [Signature.Validate] to tell malformed input apart
// from a signature that does not match.
func Verify(pub *PublicKey, message []byte, sig *Signature, h *Hash) bool {
	if pub == nil || pub.Y == nil || pub.checkShape() != nil {
		return false
	}
	if sig.Validate(pub.Q) != nil {
		return false
	}
	if h == nil {
		h = defaultHash(pub.N)
	}
	p, q := pub.P, pub.Q

	// w = s^-1 mod q; q is prime and s is in [1, q-1], so this cannot
	// fail unless the key is malformed.
	w, err := modInverse(sig.S, q)
	if err != nil {
		return false
	}
	e := h.sumToInt(message)

	// u1 = e*w mod q, u2 = r*w mod q
	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	// v = ((g^u1 * y^u2) mod p) mod q
	v := new(big.Int).Exp(pub.G, u1, p)
	t := new(big.Int).Exp(pub.Y, u2, p)
	v.Mul(v, t)
	v.Mod(v, p)
	v.Mod(v, q)
	return v.Cmp(sig.R) == 0
}

// Verify is a shorthand for [Verify] with this key.
func (pub *PublicKey) Verify(message []byte, sig *Signature, h *Hash) bool {
	return Verify(pub, message, sig, h)
}

// Validate checks that r and s are both in [1, q-1].
func (sig *Signature) Validate(q *big.Int) error {
	if sig == nil || q == nil {
		return fmt.Errorf("%w: missing signature or q", ErrInvalidSignatureEncoding)
	}
	qm1 := new(big.Int).Sub(q, bigOne)
	if !inRange(sig.R, bigOne, qm1) {
		return fmt.Errorf("%w: r out of range", ErrInvalidSignatureEncoding)
	}
	if !inRange(sig.S, bigOne, qm1) {
		return fmt.Errorf("%w: s out of range", ErrInvalidSignatureEncoding)
	}
	return nil
}

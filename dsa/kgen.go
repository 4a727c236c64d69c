package dsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// PublicKey is a DSA verifying key: y = g^x mod p.
type PublicKey struct {
	Parameters
	Y *big.Int
}

// PrivateKey is a DSA signing key. The private exponent x is not
// accessible outside this package; signing goes through [Sign] or
// [PrivateKey.Sign].
type PrivateKey struct {
	PublicKey
	x *big.Int
}

// Generate a new key pair.
//
//	- rng is random source to use (nil to use the OS RNG).
//	- params are the domain parameters, with generator.
//
// The private exponent x is uniform in [1, q-1] and y = g^x mod p. An
// error is reported if the parameters are incomplete or if the random
// source fails; there is no retry loop.
func GenerateKey(rng io.Reader, params *Parameters) (*PrivateKey, error) {
	if err := params.checkShape(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.Reader
	}
	x, err := randRange(rng, bigOne, new(big.Int).Sub(params.Q, bigOne))
	if err != nil {
		return nil, err
	}
	priv := &PrivateKey{
		PublicKey: PublicKey{
			Parameters: *params,
			Y:          new(big.Int).Exp(params.G, x, params.P),
		},
		x: x,
	}
	return priv, nil
}

// Public returns the public half of the key pair.
func (priv *PrivateKey) Public() *PublicKey {
	pub := priv.PublicKey
	return &pub
}

// Validate checks the parameters, the generator and the public value:
// 1 < y < p and y^q mod p = 1.
func (pub *PublicKey) Validate() error {
	if pub == nil {
		return fmt.Errorf("%w: nil public key", ErrInvalidParameters)
	}
	if err := pub.Parameters.Validate(); err != nil {
		return err
	}
	y := pub.Y
	if y == nil || y.Cmp(bigOne) <= 0 || y.Cmp(pub.P) >= 0 {
		return fmt.Errorf("%w: y out of range", ErrInvalidParameters)
	}
	if new(big.Int).Exp(y, pub.Q, pub.P).Cmp(bigOne) != 0 {
		return fmt.Errorf("%w: y is not in the order-q subgroup", ErrInvalidParameters)
	}
	return nil
}

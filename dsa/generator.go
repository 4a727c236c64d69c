package dsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Parameters are domain parameters completed with a generator g of the
// order-q subgroup modulo p.
type Parameters struct {
	*DomainParameters
	G *big.Int
}

// Compute a generator for the provided domain parameters.
//
//	- ctx bounds the search (cancellation, deadline, logger)
//	- rng is the random source to use (nil to use the OS RNG)
//	- dp are the domain parameters (p, q)
//	- opts controls the attempt budget and parallelism (may be nil)
//
// Values h are drawn in [2, p-2] and g = h^((p-1)/q) mod p is accepted
// as soon as g > 1. Since (p-1)/q is the cofactor, the order of g
// divides q, and is exactly q since q is prime and g != 1.
func GenerateGenerator(ctx context.Context, rng io.Reader,
	dp *DomainParameters, opts *Options) (*Parameters, error) {

	if dp == nil || dp.P == nil || dp.Q == nil || dp.Q.Sign() <= 0 ||
		dp.P.Cmp(big.NewInt(4)) <= 0 {
		return nil, fmt.Errorf("%w: missing or degenerate p, q", ErrInvalidParameters)
	}
	if rng == nil {
		rng = rand.Reader
	}
	ctx, cancel := withBudget(ctx, opts)
	defer cancel()

	pm1 := new(big.Int).Sub(dp.P, bigOne)
	cofactor, rem := new(big.Int).QuoRem(pm1, dp.Q, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("%w: q does not divide p-1", ErrInvalidParameters)
	}
	hMax := new(big.Int).Sub(dp.P, bigTwo)
	g, _, err := search(ctx, rng, opts, "g", func(rng io.Reader) (*big.Int, bool, error) {
		h, err := randRange(rng, bigTwo, hMax)
		if err != nil {
			return nil, false, err
		}
		g := new(big.Int).Exp(h, cofactor, dp.P)
		return g, g.Cmp(bigOne) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	return &Parameters{DomainParameters: dp, G: g}, nil
}

// Validate checks the domain parameters and the generator: 1 < g < p
// and g^q mod p = 1.
func (params *Parameters) Validate() error {
	if params == nil {
		return fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	if err := params.DomainParameters.Validate(); err != nil {
		return err
	}
	return params.checkGenerator()
}

// Generator checks only (no primality tests).
func (params *Parameters) checkGenerator() error {
	g := params.G
	if g == nil || g.Cmp(bigOne) <= 0 || g.Cmp(params.P) >= 0 {
		return fmt.Errorf("%w: g out of range", ErrInvalidParameters)
	}
	if new(big.Int).Exp(g, params.Q, params.P).Cmp(bigOne) != 0 {
		return fmt.Errorf("%w: g does not have order q", ErrInvalidParameters)
	}
	return nil
}

// Light structural check used on the signing and key generation paths.
func (params *Parameters) checkShape() error {
	if params == nil || params.DomainParameters == nil ||
		params.P == nil || params.Q == nil || params.G == nil {
		return fmt.Errorf("%w: incomplete parameters", ErrInvalidParameters)
	}
	if params.Q.Cmp(bigTwo) < 0 || params.P.Cmp(params.Q) <= 0 {
		return fmt.Errorf("%w: inconsistent p, q", ErrInvalidParameters)
	}
	if params.G.Cmp(bigOne) <= 0 || params.G.Cmp(params.P) >= 0 {
		return fmt.Errorf("%w: g out of range", ErrInvalidParameters)
	}
	return nil
}

package dsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog"
)

// DomainParameters holds the primes p (L bits) and q (N bits), with q
// dividing p-1. Values are immutable once generated; they may be shared
// by any number of keys.
type DomainParameters struct {
	P, Q *big.Int
	L, N int

	// Seed records the values p and q were derived from. It is nil for
	// parameters that were not produced by this package.
	Seed *Seed
}

// Seed contains the random values from which domain parameters were
// derived: q is obtained from S alone, and p from S, J and the K
// values (one per block). Hash is the name of the hash function that
// was used.
type Seed struct {
	S    *big.Int
	J    *big.Int
	K    []*big.Int
	Hash string
}

// Generate new domain parameters.
//
//	- ctx bounds the search (cancellation, deadline, logger)
//	- rng is the random source to use (nil to use the OS RNG)
//	- sizes is one of the standard (L, N) pairs
//	- h is the hash function (nil for the default for N)
//	- opts controls the attempt budget and parallelism (may be nil)
//
// An error is reported if the sizes are not a standard pair, if the hash
// output is shorter than N bits, if the random source fails, or if the
// search budget is exhausted (ErrGenerationExhausted).
func GenerateParameters(ctx context.Context, rng io.Reader,
	sizes ParameterSizes, h *Hash, opts *Options) (*DomainParameters, error) {

	L, N, err := sizes.Bits()
	if err != nil {
		return nil, err
	}
	return generateParameters(ctx, rng, L, N, h, opts)
}

// Similar to [GenerateParameters], except that this function accepts
// arbitrary sizes with 8 <= N <= 256 and N+8 <= L <= 3072. Such sizes
// (except the standard ones) do not provide adequate security and are
// meant for research and test purposes only.
func GenerateParametersWeak(ctx context.Context, rng io.Reader,
	L, N int, h *Hash, opts *Options) (*DomainParameters, error) {

	if err := CheckWeakSizes(L, N); err != nil {
		return nil, err
	}
	return generateParameters(ctx, rng, L, N, h, opts)
}

// Inner generation function; sizes have been checked.
func generateParameters(ctx context.Context, rng io.Reader,
	L, N int, h *Hash, opts *Options) (*DomainParameters, error) {

	if rng == nil {
		rng = rand.Reader
	}
	if h == nil {
		h = defaultHash(N)
	}
	if h.Size()*8 < N {
		return nil, fmt.Errorf("%w: %s output (%d bits) is shorter than N=%d",
			ErrInvalidParameterSize, h.Name(), h.Size()*8, N)
	}
	ctx, cancel := withBudget(ctx, opts)
	defer cancel()
	log := zerolog.Ctx(ctx).With().
		Int("L", L).Int("N", N).Str("hash", h.Name()).Logger()
	ctx = log.WithContext(ctx)

	q, s, err := computeQ(ctx, rng, N, h, opts)
	if err != nil {
		return nil, err
	}
	p, j, k, err := computeP(ctx, rng, L, N, q, s, h, opts)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("p_bits", p.BitLen()).Int("q_bits", q.BitLen()).
		Msg("domain parameters generated")

	return &DomainParameters{
		P: p,
		Q: q,
		L: L,
		N: N,
		Seed: &Seed{
			S:    s,
			J:    j,
			K:    k,
			Hash: h.Name(),
		},
	}, nil
}

type qCandidate struct {
	q, s *big.Int
}

// Search for q: draw a seed s in [1, 2^N-1], derive q from it, and
// accept q if it is a prime of exactly N bits. Returned values are q
// and its seed s.
func computeQ(ctx context.Context, rng io.Reader, N int, h *Hash,
	opts *Options) (*big.Int, *big.Int, error) {

	sMax := new(big.Int).Sub(pow2(N), bigOne)
	c, _, err := search(ctx, rng, opts, "q", func(rng io.Reader) (qCandidate, bool, error) {
		s, err := randRange(rng, bigOne, sMax)
		if err != nil {
			return qCandidate{}, false, err
		}
		q := deriveQ(N, s, h)
		return qCandidate{q: q, s: s}, acceptQ(N, q), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return c.q, c.s, nil
}

// Compute the q candidate for seed s:
//
//	q = (H(s) XOR H((s+1) mod 2^N)) mod 2^N
func deriveQ(N int, s *big.Int, h *Hash) *big.Int {
	z := new(big.Int).Add(s, bigOne)
	truncateBits(z, N)
	u := h.intToInt(s)
	u.Xor(u, h.intToInt(z))
	return truncateBits(u, N)
}

// q is acceptable if 2^(N-1) < q < 2^N and q is prime.
func acceptQ(N int, q *big.Int) bool {
	if q.BitLen() != N || q.Cmp(pow2(N-1)) == 0 {
		return false
	}
	return q.ProbablyPrime(primalityRounds)
}

type pCandidate struct {
	p, j *big.Int
	k    []*big.Int
}

// Search for p, given q and its seed s: draw j and one k value per
// block (all in [0, 2^(N-1)-1]), derive p, and accept it if it is a
// prime of exactly L bits with q dividing p-1. Returned values are p,
// j and the k values.
func computeP(ctx context.Context, rng io.Reader, L, N int, q, s *big.Int,
	h *Hash, opts *Options) (*big.Int, *big.Int, []*big.Int, error) {

	iterations := (L - 1) / N
	bound := pow2(N - 1)
	c, _, err := search(ctx, rng, opts, "p", func(rng io.Reader) (pCandidate, bool, error) {
		j, err := randBelow(rng, bound)
		if err != nil {
			return pCandidate{}, false, err
		}
		k := make([]*big.Int, iterations+1)
		for i := range k {
			if k[i], err = randBelow(rng, bound); err != nil {
				return pCandidate{}, false, err
			}
		}
		p := deriveP(L, N, q, s, j, k, h)
		return pCandidate{p: p, j: j, k: k}, acceptP(L, p, q), nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return c.p, c.j, c.k, nil
}

// Compute the p candidate. With iterations = floor((L-1)/N) and
// b = (L-1) mod N:
//
//	V_i = H(s + j + k_i) mod 2^N                 (0 <= i <= iterations)
//	W   = sum_{i<iterations} V_i*2^(N*i)
//	      + (V_iterations mod 2^b)*2^(N*iterations) + 2^(L-1)
//	p   = W - (W mod 2q) + 1
//
// p is congruent to 1 modulo 2q by construction. The caller must
// provide exactly iterations+1 k values.
func deriveP(L, N int, q, s, j *big.Int, k []*big.Int, h *Hash) *big.Int {
	iterations := (L - 1) / N
	b := (L - 1) % N
	w := pow2(L - 1)
	base := new(big.Int).Add(s, j)
	t := new(big.Int)
	for i := 0; i <= iterations; i++ {
		t.Add(base, k[i])
		v := truncateBits(h.intToInt(t), N)
		if i == iterations {
			truncateBits(v, b)
		}
		w.Add(w, v.Lsh(v, uint(N*i)))
	}
	c := new(big.Int).Mod(w, new(big.Int).Lsh(q, 1))
	w.Sub(w, c)
	return w.Add(w, bigOne)
}

// p is acceptable if 2^(L-1) <= p < 2^L, q divides p-1, and both p and
// q are prime.
func acceptP(L int, p, q *big.Int) bool {
	if p.BitLen() != L {
		return false
	}
	if new(big.Int).Mod(new(big.Int).Sub(p, bigOne), q).Sign() != 0 {
		return false
	}
	return p.ProbablyPrime(primalityRounds) && q.ProbablyPrime(primalityRounds)
}

// Validate checks all the invariants of the domain parameters: p and q
// are primes of exactly L and N bits, q > 2^(N-1), and q divides p-1.
func (dp *DomainParameters) Validate() error {
	if dp == nil || dp.P == nil || dp.Q == nil {
		return fmt.Errorf("%w: missing p or q", ErrInvalidParameters)
	}
	if dp.N <= 1 || dp.L <= dp.N {
		return fmt.Errorf("%w: inconsistent sizes (L=%d, N=%d)",
			ErrInvalidParameters, dp.L, dp.N)
	}
	if !acceptQ(dp.N, dp.Q) {
		return fmt.Errorf("%w: q is not a %d-bit prime", ErrInvalidParameters, dp.N)
	}
	if !acceptP(dp.L, dp.P, dp.Q) {
		return fmt.Errorf("%w: p is not a %d-bit prime with q | p-1",
			ErrInvalidParameters, dp.L)
	}
	return nil
}

// VerifySeed re-derives q and p from the recorded seed and checks that
// they match the parameters. If h is nil, the hash function is looked
// up by the name recorded in the seed.
func (dp *DomainParameters) VerifySeed(h *Hash) error {
	if dp == nil || dp.P == nil || dp.Q == nil {
		return fmt.Errorf("%w: missing p or q", ErrInvalidParameters)
	}
	if dp.N <= 1 || dp.L <= dp.N {
		return fmt.Errorf("%w: inconsistent sizes (L=%d, N=%d)",
			ErrInvalidParameters, dp.L, dp.N)
	}
	sd := dp.Seed
	if sd == nil || sd.S == nil || sd.J == nil {
		return fmt.Errorf("%w: no seed recorded", ErrSeedMismatch)
	}
	if h == nil {
		var err error
		if h, err = HashByName(sd.Hash); err != nil {
			return err
		}
	}
	if len(sd.K) != (dp.L-1)/dp.N+1 {
		return fmt.Errorf("%w: expected %d k values, got %d",
			ErrSeedMismatch, (dp.L-1)/dp.N+1, len(sd.K))
	}
	for _, k := range sd.K {
		if k == nil {
			return fmt.Errorf("%w: nil k value", ErrSeedMismatch)
		}
	}
	if deriveQ(dp.N, sd.S, h).Cmp(dp.Q) != 0 {
		return fmt.Errorf("%w: q", ErrSeedMismatch)
	}
	if deriveP(dp.L, dp.N, dp.Q, sd.S, sd.J, sd.K, h).Cmp(dp.P) != 0 {
		return fmt.Errorf("%w: p", ErrSeedMismatch)
	}
	return nil
}

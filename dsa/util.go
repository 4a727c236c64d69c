package dsa

import (
	"fmt"
	"io"
	"math/big"
	"sync"
)

// Utility functions.

// ParameterSizes identifies one of the sanctioned (L, N) pairs: L is
// the bit length of p, N the bit length of q.
type ParameterSizes int

const (
	L1024N160 ParameterSizes = iota
	L2048N224
	L2048N256
	L3072N256
)

// Bits returns the (L, N) pair for the sizes; an error is returned if
// the value is not one of the defined constants.
func (s ParameterSizes) Bits() (int, int, error) {
	switch s {
	case L1024N160:
		return 1024, 160, nil
	case L2048N224:
		return 2048, 224, nil
	case L2048N256:
		return 2048, 256, nil
	case L3072N256:
		return 3072, 256, nil
	}
	return 0, 0, fmt.Errorf("%w: unknown parameter sizes %d", ErrInvalidParameterSize, int(s))
}

func (s ParameterSizes) String() string {
	L, N, err := s.Bits()
	if err != nil {
		return fmt.Sprintf("ParameterSizes(%d)", int(s))
	}
	return fmt.Sprintf("L%dN%d", L, N)
}

// ParseParameterSizes returns the sizes for an (L, N) pair, or
// ErrInvalidParameterSize if the pair is not sanctioned.
func ParseParameterSizes(L, N int) (ParameterSizes, error) {
	for _, s := range []ParameterSizes{L1024N160, L2048N224, L2048N256, L3072N256} {
		l, n, _ := s.Bits()
		if l == L && n == N {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: (L=%d, N=%d) is not a standard pair",
		ErrInvalidParameterSize, L, N)
}

// Bounds for the non-standard (weak) sizes.
const (
	weakMinN      = 8
	weakMaxN      = 256
	weakMinMargin = 8
	weakMaxL      = 3072
)

// CheckWeakSizes reports whether (L, N) is accepted by
// [GenerateParametersWeak]: 8 <= N <= 256 and N+8 <= L <= 3072.
func CheckWeakSizes(L, N int) error {
	if N < weakMinN || N > weakMaxN || L < N+weakMinMargin || L > weakMaxL {
		return fmt.Errorf("%w: (L=%d, N=%d) is out of the supported range",
			ErrInvalidParameterSize, L, N)
	}
	return nil
}

// Number of Miller-Rabin rounds for primality tests; ProbablyPrime()
// also runs a Baillie-PSW test, and is exact below 2^64.
const primalityRounds = 64

// Maximum number of rejected draws in a single uniform sampling. Each
// draw is accepted with probability greater than 1/2, so a correct
// random source never reaches this bound in practice.
const maxSampleTries = 256

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Get 2^n as a new integer.
func pow2(n int) *big.Int {
	return new(big.Int).Lsh(bigOne, uint(n))
}

// Reduce x modulo 2^n, in place; x must be non-negative.
func truncateBits(x *big.Int, n int) *big.Int {
	if x.BitLen() <= n {
		return x
	}
	return x.And(x, new(big.Int).Sub(pow2(n), bigOne))
}

// Draw a uniform integer in [0, n-1] by rejection sampling: read
// ceil(bitlen(n)/8) bytes (big-endian), clear the bits above bitlen(n),
// and retry if the value is not lower than n.
func randBelow(rng io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: empty sampling range", ErrInvalidParameters)
	}
	nbits := n.BitLen()
	buf := make([]byte, (nbits+7)>>3)
	mask := byte(0xFF)
	if r := nbits & 7; r != 0 {
		mask = byte(1<<r) - 1
	}
	x := new(big.Int)
	for i := 0; i < maxSampleTries; i++ {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("dsa: reading random source: %w", err)
		}
		buf[0] &= mask
		x.SetBytes(buf)
		if x.Cmp(n) < 0 {
			return x, nil
		}
	}
	return nil, fmt.Errorf("%w: random source keeps producing out-of-range values",
		ErrGenerationExhausted)
}

// Draw a uniform integer in [lo, hi] (both inclusive).
func randRange(rng io.Reader, lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, bigOne)
	x, err := randBelow(rng, span)
	if err != nil {
		return nil, err
	}
	return x.Add(x, lo), nil
}

// Compute a^-1 mod m. An error is returned if the inverse does not
// exist; with a prime m and a non-zero a, this never happens.
func modInverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, fmt.Errorf("%w: %s mod %s", ErrNonInvertible, a, m)
	}
	return inv, nil
}

// Check that lo <= x <= hi.
func inRange(x, lo, hi *big.Int) bool {
	return x != nil && x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0
}

// An io.Reader that serializes reads; used to share one random source
// among search workers.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

package dsa

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestSignatureSize(t *testing.T) {
	var expected = map[int]int{
		8: 2, 20: 6, 32: 8, 160: 40, 224: 56, 256: 64,
	}
	for N, want := range expected {
		s := SignatureSize(N)
		if s != want {
			t.Fatalf("ERR: N=%d -> %d (exp: %d)\n", N, s, want)
		}
	}
}

func TestParameterSizes(t *testing.T) {
	var expected = [4][2]int{
		{1024, 160}, {2048, 224}, {2048, 256}, {3072, 256},
	}
	for i, ln := range expected {
		L, N, err := ParameterSizes(i).Bits()
		if err != nil {
			t.Fatal(err)
		}
		if L != ln[0] || N != ln[1] {
			t.Fatalf("ERR: sizes=%d -> (%d, %d) (exp: (%d, %d))\n", i, L, N, ln[0], ln[1])
		}
		s, err := ParseParameterSizes(L, N)
		if err != nil || s != ParameterSizes(i) {
			t.Fatalf("ERR: parse (%d, %d) -> %v, %v\n", L, N, s, err)
		}
	}
	if _, _, err := ParameterSizes(42).Bits(); !errors.Is(err, ErrInvalidParameterSize) {
		t.Fatalf("ERR: unknown sizes accepted: %v\n", err)
	}
	if _, err := ParseParameterSizes(64, 20); !errors.Is(err, ErrInvalidParameterSize) {
		t.Fatalf("ERR: weak pair parsed as standard: %v\n", err)
	}
	if L1024N160.String() != "L1024N160" {
		t.Fatalf("ERR: String() -> %s\n", L1024N160.String())
	}
}

func TestRandBelow(t *testing.T) {
	rng := NewDeterministicReader([]byte("randBelow"))
	for _, nv := range []int64{1, 2, 3, 7, 8, 255, 256, 257, 1000003} {
		n := big.NewInt(nv)
		for i := 0; i < 200; i++ {
			x, err := randBelow(rng, n)
			if err != nil {
				t.Fatal(err)
			}
			if x.Sign() < 0 || x.Cmp(n) >= 0 {
				t.Fatalf("ERR: randBelow(%d) -> %d\n", nv, x)
			}
		}
	}
	if _, err := randBelow(rng, big.NewInt(0)); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("ERR: empty range accepted: %v\n", err)
	}
}

// A source that only yields 0xFF bytes can never produce a value below
// 0x80 with a single byte, so sampling must give up.
type constReader byte

func (c constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

func TestRandBelowExhausted(t *testing.T) {
	_, err := randBelow(constReader(0xFF), big.NewInt(0x80))
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("ERR: expected exhaustion, got %v\n", err)
	}
}

func TestRandRange(t *testing.T) {
	rng := NewDeterministicReader([]byte("randRange"))
	lo, hi := big.NewInt(2), big.NewInt(5)
	seen := make(map[int64]bool)
	for i := 0; i < 400; i++ {
		x, err := randRange(rng, lo, hi)
		if err != nil {
			t.Fatal(err)
		}
		if !inRange(x, lo, hi) {
			t.Fatalf("ERR: randRange -> %d\n", x)
		}
		seen[x.Int64()] = true
	}
	if len(seen) != 4 {
		t.Fatalf("ERR: only %d distinct values drawn\n", len(seen))
	}
}

func TestModInverse(t *testing.T) {
	q := big.NewInt(991603)
	for _, a := range []int64{1, 2, 12345, 991602} {
		inv, err := modInverse(big.NewInt(a), q)
		if err != nil {
			t.Fatal(err)
		}
		z := new(big.Int).Mul(inv, big.NewInt(a))
		if z.Mod(z, q).Cmp(bigOne) != 0 {
			t.Fatalf("ERR: modInverse(%d) -> %d\n", a, inv)
		}
	}
	if _, err := modInverse(big.NewInt(6), big.NewInt(9)); !errors.Is(err, ErrNonInvertible) {
		t.Fatalf("ERR: expected ErrNonInvertible, got %v\n", err)
	}
}

func TestTruncateBits(t *testing.T) {
	x := big.NewInt(0x1FF)
	if truncateBits(x, 8).Int64() != 0xFF {
		t.Fatalf("ERR: truncateBits -> %x\n", x)
	}
	if truncateBits(big.NewInt(5), 0).Sign() != 0 {
		t.Fatal("ERR: truncateBits(5, 0) != 0")
	}
	if truncateBits(big.NewInt(5), 3).Int64() != 5 {
		t.Fatal("ERR: truncateBits(5, 3) != 5")
	}
}

func TestDeterministicReader(t *testing.T) {
	a := make([]byte, 1000)
	b := make([]byte, 1000)
	r1 := NewDeterministicReader([]byte("seed"))
	r2 := NewDeterministicReader([]byte("seed"))
	r1.Read(a)
	// Same stream when read in uneven chunks.
	for off := 0; off < len(b); {
		n := 7
		if off+n > len(b) {
			n = len(b) - off
		}
		r2.Read(b[off : off+n])
		off += n
	}
	if !bytes.Equal(a, b) {
		t.Fatal("ERR: deterministic reader output depends on read sizes")
	}
	c := make([]byte, 1000)
	NewDeterministicReader([]byte("other seed")).Read(c)
	if bytes.Equal(a, c) {
		t.Fatal("ERR: different seeds yield the same stream")
	}
}

package dsa

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"math/big"
	"strings"

	"golang.org/x/crypto/ripemd160"
	sha3 "golang.org/x/crypto/sha3"
)

// MinDigestSize is the minimum digest length (in bytes) of a hash
// function used with this package (160 bits).
const MinDigestSize = 20

// Hash is the hash function capability used for parameter generation,
// signing and verification. It is stateless: each call to Sum uses a
// fresh instance obtained from the constructor.
type Hash struct {
	name    string
	size    int
	newHash func() hash.Hash
}

// Predefined hash functions.
var (
	SHA1      = mustNewHash("sha1", sha1.New)
	SHA224    = mustNewHash("sha224", sha256.New224)
	SHA256    = mustNewHash("sha256", sha256.New)
	SHA384    = mustNewHash("sha384", sha512.New384)
	SHA512    = mustNewHash("sha512", sha512.New)
	SHA3_256  = mustNewHash("sha3-256", sha3.New256)
	SHA3_512  = mustNewHash("sha3-512", sha3.New512)
	RIPEMD160 = mustNewHash("ripemd160", ripemd160.New)
)

// NewHash wraps a hash constructor. The digest must be at least
// MinDigestSize bytes long.
func NewHash(name string, fn func() hash.Hash) (*Hash, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil constructor for %q", ErrInvalidHash, name)
	}
	size := fn().Size()
	if size < MinDigestSize {
		return nil, fmt.Errorf("%w: %q has a %d-bit digest (minimum is %d)",
			ErrInvalidHash, name, size*8, MinDigestSize*8)
	}
	return &Hash{name: name, size: size, newHash: fn}, nil
}

func mustNewHash(name string, fn func() hash.Hash) *Hash {
	h, err := NewHash(name, fn)
	if err != nil {
		panic(err)
	}
	return h
}

// HashByName returns one of the predefined hash functions. Matching
// ignores case, dashes and underscores ("SHA-256", "sha_256" and
// "sha256" are equivalent).
func HashByName(name string) (*Hash, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
	switch norm {
	case "sha1":
		return SHA1, nil
	case "sha224":
		return SHA224, nil
	case "sha256":
		return SHA256, nil
	case "sha384":
		return SHA384, nil
	case "sha512":
		return SHA512, nil
	case "sha3256":
		return SHA3_256, nil
	case "sha3512":
		return SHA3_512, nil
	case "ripemd160":
		return RIPEMD160, nil
	}
	return nil, fmt.Errorf("%w: unknown hash %q", ErrInvalidHash, name)
}

// Name returns the name the hash function was registered with.
func (h *Hash) Name() string {
	return h.name
}

// Size returns the digest length, in bytes.
func (h *Hash) Size() int {
	return h.size
}

// Sum returns the digest of data.
func (h *Hash) Sum(data []byte) []byte {
	d := h.newHash()
	d.Write(data)
	return d.Sum(nil)
}

// Digest of data, interpreted as an unsigned big-endian integer.
func (h *Hash) sumToInt(data []byte) *big.Int {
	return new(big.Int).SetBytes(h.Sum(data))
}

// Digest of the minimal big-endian encoding of x (zero is encoded as
// an empty string), interpreted as an unsigned big-endian integer.
func (h *Hash) intToInt(x *big.Int) *big.Int {
	return h.sumToInt(x.Bytes())
}

// Get the hash function to use for a q of nbits bits when the caller
// did not provide one.
func defaultHash(nbits int) *Hash {
	switch {
	case nbits <= 160:
		return SHA1
	case nbits <= 224:
		return SHA224
	default:
		return SHA256
	}
}

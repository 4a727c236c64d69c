package dsa

import (
	"crypto/md5"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashByName(t *testing.T) {
	tests := []struct {
		name string
		want *Hash
		size int
	}{
		{"sha1", SHA1, 20},
		{"SHA-1", SHA1, 20},
		{"sha224", SHA224, 28},
		{"SHA_256", SHA256, 32},
		{"sha384", SHA384, 48},
		{"sha512", SHA512, 64},
		{"sha3-256", SHA3_256, 32},
		{"SHA3_512", SHA3_512, 64},
		{"ripemd160", RIPEMD160, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := HashByName(tt.name)
			require.NoError(t, err)
			assert.Same(t, tt.want, h)
			assert.Equal(t, tt.size, h.Size())
		})
	}

	_, err := HashByName("md5")
	require.ErrorIs(t, err, ErrInvalidHash)
}

func TestNewHash(t *testing.T) {
	t.Run("rejects digests shorter than 160 bits", func(t *testing.T) {
		_, err := NewHash("md5", md5.New)
		require.ErrorIs(t, err, ErrInvalidHash)
	})

	t.Run("rejects nil constructor", func(t *testing.T) {
		_, err := NewHash("nil", nil)
		require.ErrorIs(t, err, ErrInvalidHash)
	})

	t.Run("accepts custom functions", func(t *testing.T) {
		h, err := NewHash("custom", SHA256.newHash)
		require.NoError(t, err)
		assert.Equal(t, "custom", h.Name())
		assert.Equal(t, SHA256.Sum([]byte("abc")), h.Sum([]byte("abc")))
	})
}

func TestHashSum(t *testing.T) {
	// FIPS 180 "abc" test vectors.
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d",
		hex.EncodeToString(SHA1.Sum([]byte("abc"))))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(SHA256.Sum([]byte("abc"))))
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
		hex.EncodeToString(SHA3_256.Sum([]byte("abc"))))
	assert.Equal(t, "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc",
		hex.EncodeToString(RIPEMD160.Sum([]byte("abc"))))
}

func TestHashIntEncoding(t *testing.T) {
	// Zero is hashed as the empty string, other values through their
	// minimal big-endian encoding.
	assert.Equal(t, SHA1.sumToInt(nil), SHA1.intToInt(big.NewInt(0)))
	assert.Equal(t, SHA1.sumToInt([]byte{0x01, 0x00}), SHA1.intToInt(big.NewInt(256)))
}

func TestDefaultHash(t *testing.T) {
	assert.Same(t, SHA1, defaultHash(20))
	assert.Same(t, SHA1, defaultHash(160))
	assert.Same(t, SHA224, defaultHash(224))
	assert.Same(t, SHA256, defaultHash(256))
}

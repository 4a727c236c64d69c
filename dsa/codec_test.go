package dsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureCodec(t *testing.T) {
	priv := testKeyPair(t, 128, 32, "codec")
	pub := priv.Public()
	msg := []byte("encode me")

	for i := 0; i < 20; i++ {
		sig, err := Sign(nil, priv, msg, nil, nil)
		require.NoError(t, err)
		enc, err := sig.Encode(pub.N)
		require.NoError(t, err)
		require.Len(t, enc, SignatureSize(pub.N))

		dec, err := DecodeSignature(pub.Q, enc)
		require.NoError(t, err)
		assert.Zero(t, dec.R.Cmp(sig.R))
		assert.Zero(t, dec.S.Cmp(sig.S))
		assert.True(t, Verify(pub, msg, dec, nil))
	}
}

func TestSignatureEncode_Padding(t *testing.T) {
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(0x0102)}
	enc, err := sig.Encode(20)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x02}, enc)
}

func TestSignatureEncode_Errors(t *testing.T) {
	_, err := (*Signature)(nil).Encode(20)
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	_, err = (&Signature{R: big.NewInt(1)}).Encode(20)
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	_, err = (&Signature{R: big.NewInt(1), S: pow2(20)}).Encode(20)
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	_, err = (&Signature{R: big.NewInt(-1), S: big.NewInt(1)}).Encode(20)
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)
}

func TestDecodeSignature_Errors(t *testing.T) {
	q := big.NewInt(991603) // 20 bits, 3 bytes per value

	_, err := DecodeSignature(q, make([]byte, 5))
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)
	_, err = DecodeSignature(q, make([]byte, 7))
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	// r = 0
	_, err = DecodeSignature(q, []byte{0, 0, 0, 0, 0, 1})
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	// s = q
	qb := q.FillBytes(make([]byte, 3))
	_, err = DecodeSignature(q, append([]byte{0, 0, 1}, qb...))
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	// r = 2^24 - 1 fits in the encoding but not below q
	_, err = DecodeSignature(q, []byte{0xFF, 0xFF, 0xFF, 0, 0, 1})
	require.ErrorIs(t, err, ErrInvalidSignatureEncoding)

	_, err = DecodeSignature(nil, make([]byte, 6))
	require.ErrorIs(t, err, ErrInvalidParameters)

	sig, err := DecodeSignature(q, []byte{0, 0, 1, 0x0F, 0x21, 0x72})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sig.R.Int64())
	assert.Equal(t, int64(991602), sig.S.Int64())
}

package dsa

import (
	"fmt"
	"math/big"
)

// Get the size of an encoded signature, in bytes, for a q of N bits.
// The encoding is r || s, each value in unsigned big-endian notation
// over exactly ceil(N/8) bytes.
func SignatureSize(N int) int {
	return 2 * ((N + 7) >> 3)
}

// Encode the signature for a q of N bits. An error is returned if r or
// s is negative or does not fit in N bits.
func (sig *Signature) Encode(N int) ([]byte, error) {
	if sig == nil || sig.R == nil || sig.S == nil {
		return nil, fmt.Errorf("%w: incomplete signature", ErrInvalidSignatureEncoding)
	}
	if sig.R.Sign() < 0 || sig.S.Sign() < 0 ||
		sig.R.BitLen() > N || sig.S.BitLen() > N {
		return nil, fmt.Errorf("%w: value does not fit in %d bits",
			ErrInvalidSignatureEncoding, N)
	}
	hlen := (N + 7) >> 3
	buf := make([]byte, 2*hlen)
	sig.R.FillBytes(buf[:hlen])
	sig.S.FillBytes(buf[hlen:])
	return buf, nil
}

// Decode a signature for the subgroup order q. The length must be
// exactly SignatureSize(q.BitLen()), and both r and s must be in
// [1, q-1].
func DecodeSignature(q *big.Int, data []byte) (*Signature, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, fmt.Errorf("%w: invalid q", ErrInvalidParameters)
	}
	N := q.BitLen()
	if len(data) != SignatureSize(N) {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidSignatureEncoding, SignatureSize(N), len(data))
	}
	hlen := len(data) >> 1
	sig := &Signature{
		R: new(big.Int).SetBytes(data[:hlen]),
		S: new(big.Int).SetBytes(data[hlen:]),
	}
	if err := sig.Validate(q); err != nil {
		return nil, err
	}
	return sig, nil
}

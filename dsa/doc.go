// This package implements the DSA signature algorithm, with domain
// parameters built through the hash-seeded construction of the Digital
// Signature Standard (DSS).
//
// WARNING: DSA is a legacy algorithm. This implementation makes no
// attempt at constant-time arithmetic (it relies on math/big) and
// should be used for tests, interoperability experiments and teaching
// purposes, not to protect real secrets.
//
// Domain parameters consist of a prime modulus p of L bits and a prime q
// of N bits, with q dividing p-1. Sizes are identified by the
// [ParameterSizes] constants (L1024N160, L2048N224, L2048N256 and
// L3072N256), which are the only sizes accepted by [GenerateParameters].
// Smaller sizes (e.g. L=64, N=20) do not provide any security but are
// convenient for tests; they are segregated at the API level and must
// be requested explicitly with [GenerateParametersWeak].
//
// Parameter generation is a randomized search: a seed s yields a
// candidate q = H(s) XOR H(s+1), and additional random values j and k_i
// are hashed together with s to build a candidate p congruent to 1
// modulo 2q. Every candidate is either accepted or rejected, and the
// search is bounded by an attempt budget and an optional time budget
// (see [Options]); when the budget runs out, [ErrGenerationExhausted]
// is returned. The seed values are kept in the resulting
// [DomainParameters] so that p and q can be re-derived and audited.
//
// A generator g of the order-q subgroup is obtained with
// [GenerateGenerator], and key pairs with [GenerateKey]. The private
// exponent x never leaves the [PrivateKey] value; signatures are
// produced with [Sign] (or [PrivateKey.Sign]) and checked with [Verify]
// (or [PublicKey.Verify]), which returns a plain Boolean.
//
// All functions take the random source explicitly. If the source is
// nil, then the operating system's RNG is used (through
// crypto/rand.Reader). A reproducible source for tests is provided by
// [NewDeterministicReader]. The hash function is explicit as well
// (see [Hash]); a nil hash selects a default suitable for the
// requested q size.
package dsa

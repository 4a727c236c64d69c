package dsa

import "time"

// DefaultMaxAttempts is the attempt budget of each randomized search
// when Options.MaxAttempts is zero. For L1024N160, a q candidate is
// accepted with probability about 1/222 and a p candidate with
// probability about 1/355, so the default budget fails with
// probability below 2^-60.
const DefaultMaxAttempts = 1 << 15

// Options control the randomized searches (q, p, g, and the signing
// loop). A nil *Options is equivalent to the zero value.
type Options struct {
	// MaxAttempts bounds the number of candidates drawn by each search
	// (0 means DefaultMaxAttempts).
	MaxAttempts int

	// Workers is the number of concurrent candidate searches for q, p
	// and g. Values below 2 select the sequential search, which is the
	// only mode that is reproducible for a given random stream.
	Workers int

	// Timeout bounds the wall-clock time of a generation or signing
	// call (0 means no time limit beyond the caller's context).
	Timeout time.Duration
}

func (o *Options) maxAttempts() int {
	if o == nil || o.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

func (o *Options) workers() int {
	if o == nil || o.Workers < 2 {
		return 1
	}
	return o.Workers
}

func (o *Options) timeout() time.Duration {
	if o == nil || o.Timeout < 0 {
		return 0
	}
	return o.Timeout
}

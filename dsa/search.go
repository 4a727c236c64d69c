package dsa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// One sampling attempt: draw a candidate from rng and validate it. The
// Boolean is true if the candidate is accepted. An error aborts the
// whole search.
type attemptFunc[T any] func(rng io.Reader) (T, bool, error)

// Returned by a worker to cancel its siblings once a candidate has been
// accepted; never escapes search().
var errCandidateFound = errors.New("candidate found")

// Apply the time budget of opts to ctx.
func withBudget(ctx context.Context, opts *Options) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d := opts.timeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// Run a bounded rejection-sampling search. The attempt function is
// called until it accepts a candidate, the attempt budget is spent, or
// ctx is done. The number of attempts actually made is returned along
// with the result.
func search[T any](ctx context.Context, rng io.Reader, opts *Options,
	what string, attempt attemptFunc[T]) (T, int, error) {

	var (
		v   T
		n   int
		err error
	)
	if opts.workers() > 1 {
		v, n, err = searchParallel(ctx, rng, opts, what, attempt)
	} else {
		v, n, err = searchSequential(ctx, rng, opts.maxAttempts(), what, attempt)
	}
	log := zerolog.Ctx(ctx)
	if err != nil {
		log.Debug().Err(err).Str("search", what).Int("attempts", n).
			Msg("search failed")
		return v, n, err
	}
	log.Debug().Str("search", what).Int("attempts", n).
		Int("workers", opts.workers()).Msg("candidate accepted")
	return v, n, nil
}

func searchSequential[T any](ctx context.Context, rng io.Reader, max int,
	what string, attempt attemptFunc[T]) (T, int, error) {

	var zero T
	for i := 0; i < max; i++ {
		if err := ctx.Err(); err != nil {
			return zero, i, exhausted(what, i, err)
		}
		v, ok, err := attempt(rng)
		if err != nil {
			return zero, i + 1, err
		}
		if ok {
			return v, i + 1, nil
		}
	}
	return zero, max, exhausted(what, max, nil)
}

// Concurrent variant: workers share the random source (serialized) and
// the attempt budget; the first accepted candidate cancels the others.
func searchParallel[T any](ctx context.Context, rng io.Reader, opts *Options,
	what string, attempt attemptFunc[T]) (T, int, error) {

	var (
		zero   T
		result T
		once   sync.Once
		found  atomic.Bool
		count  atomic.Int64
	)
	max := int64(opts.maxAttempts())
	shared := &lockedReader{r: rng}
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.workers(); w++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				if count.Add(1) > max {
					return nil
				}
				v, ok, err := attempt(shared)
				if err != nil {
					return err
				}
				if ok {
					once.Do(func() {
						result = v
						found.Store(true)
					})
					return errCandidateFound
				}
			}
			return nil
		})
	}
	err := g.Wait()
	n := int(min(count.Load(), max))
	if found.Load() {
		return result, n, nil
	}
	if err != nil {
		return zero, n, err
	}
	return zero, n, exhausted(what, n, ctx.Err())
}

func exhausted(what string, attempts int, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s search stopped after %d attempts: %w",
			ErrGenerationExhausted, what, attempts, cause)
	}
	return fmt.Errorf("%w: no valid %s in %d attempts",
		ErrGenerationExhausted, what, attempts)
}

package search

import "context"

// DefaultProgressEvery is the number of pops between two progress reports
const DefaultProgressEvery = 10_000

// Progress is a snapshot of a running search
type Progress struct {
	Iteration int     // frontier pops so far
	Frontier  int     // entries still queued
	Priority  float64 // priority of the entry just popped
	Bound     float64 // current global upper bound
}

type options struct {
	ctx      context.Context
	progress func(Progress)
	every    int
}

// Option configures a search
type Option func(*options)

// WithProgress registers an observer called every WithProgressEvery pops
func WithProgress(fn func(Progress)) Option {
	return func(o *options) { o.progress = fn }
}

// WithProgressEvery sets the reporting cadence. Values below 1 are ignored.
func WithProgressEvery(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.every = n
		}
	}
}

// WithContext makes the search stop early once ctx is done.
// The context is polled on the progress cadence.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func newOptions(opts []Option) options {
	o := options{
		ctx:   context.Background(),
		every: DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

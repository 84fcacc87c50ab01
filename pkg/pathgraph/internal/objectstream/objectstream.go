// Package objectstream implements the backpressure-capable object stream
// used by the graph's Stream/StreamSync walk surface (spec.md §4.4). No
// library in the retrieved pack provides a generic, cancellable,
// backpressured single-producer/single-consumer object stream distinct from
// an ordinary channel, so this is a small hand-rolled wrapper around an
// unbuffered channel plus a context for cancellation; see DESIGN.md for the
// standard-library justification.
package objectstream

import "context"

// Stream delivers a sequence of interface{} values from a producer to a
// single consumer, one at a time, with the consumer's pull rate governing
// the producer's pace (backpressure): Send blocks until its value has been
// received or the stream is cancelled.
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	values chan interface{}
	errs   chan error
}

// New constructs a stream bound to the given parent context. Cancelling ctx
// (or calling the returned Stream's Close) unblocks any pending Send or
// Recv.
func New(ctx context.Context) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	return &Stream{
		ctx:    ctx,
		cancel: cancel,
		values: make(chan interface{}),
		errs:   make(chan error, 1),
	}
}

// Send delivers value to the consumer, blocking until it is received or the
// stream is cancelled. It returns false if the stream was cancelled before
// the value could be delivered.
func (s *Stream) Send(value interface{}) bool {
	select {
	case s.values <- value:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// Fail terminates the stream with a terminal error: the consumer's next Recv
// reports the end of the stream, and Err then returns the error.
func (s *Stream) Fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
	s.cancel()
}

// Recv receives the next value from the producer. The second return value
// is false when the stream has ended, either normally (Close) or with an
// error (retrievable via Err).
func (s *Stream) Recv() (interface{}, bool) {
	select {
	case value, ok := <-s.values:
		return value, ok
	case <-s.ctx.Done():
		return nil, false
	}
}

// Err returns the terminal error that ended the stream, if Fail was called.
func (s *Stream) Err() error {
	select {
	case err := <-s.errs:
		s.errs <- err
		return err
	default:
		return nil
	}
}

// Close ends the stream normally, unblocking any pending Send or Recv. It is
// safe to call Close even if the producer has a Send in flight; cancelling
// the context is enough to unblock both sides without risking a send on a
// closed channel.
func (s *Stream) Close() {
	s.cancel()
}

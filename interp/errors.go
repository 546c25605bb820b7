package interp

import (
	"fmt"
)

// ErrEngineUnavailable means there is no inference engine (it was never
// created or it is already closed).
type ErrEngineUnavailable struct{}

func (ErrEngineUnavailable) Error() string {
	return "the inference engine is not available"
}

// ErrEngineProcessingFailed means the inference engine reported a failure.
type ErrEngineProcessingFailed struct {
	Op  string
	Err error
}

func (e ErrEngineProcessingFailed) Error() string {
	return fmt.Sprintf("the inference engine failed to '%s': %v", e.Op, e.Err)
}

func (e ErrEngineProcessingFailed) Unwrap() error {
	return e.Err
}

// ErrAllocationFailed means the host was unable to provide an output buffer.
type ErrAllocationFailed struct {
	Err error
}

func (e ErrAllocationFailed) Error() string {
	return fmt.Sprintf("unable to allocate an output buffer: %v", e.Err)
}

func (e ErrAllocationFailed) Unwrap() error {
	return e.Err
}

// ErrDownstreamRejected means the sink did not accept a synthesized frame.
type ErrDownstreamRejected struct {
	PTS int64
	Err error
}

func (e ErrDownstreamRejected) Error() string {
	return fmt.Sprintf("the synthesized frame with PTS %d was rejected downstream: %v", e.PTS, e.Err)
}

func (e ErrDownstreamRejected) Unwrap() error {
	return e.Err
}

type ErrAlreadyDrained struct{}

func (ErrAlreadyDrained) Error() string {
	return "the stream is already drained"
}

type ErrInvalidPTS struct {
	PTS         int64
	PreviousPTS int64
}

func (e ErrInvalidPTS) Error() string {
	return fmt.Sprintf("invalid PTS %d (the previous one is %d): timestamps must be set and non-decreasing", e.PTS, e.PreviousPTS)
}

type ErrInvalidConfig struct {
	Err error
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %v", e.Err)
}

func (e ErrInvalidConfig) Unwrap() error {
	return e.Err
}

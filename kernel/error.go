package kernel

import (
	"fmt"
)

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the kernel is closed"
}

type ErrUnexpectedStream struct {
	StreamIndex         int
	ExpectedStreamIndex int
}

func (e ErrUnexpectedStream) Error() string {
	return fmt.Sprintf("received a frame of stream #%d, but the kernel is bound to stream #%d", e.StreamIndex, e.ExpectedStreamIndex)
}

type ErrUnexpectedInput struct {
	Err error
}

func (e ErrUnexpectedInput) Error() string {
	return fmt.Sprintf("unexpected input: %v", e.Err)
}

func (e ErrUnexpectedInput) Unwrap() error {
	return e.Err
}

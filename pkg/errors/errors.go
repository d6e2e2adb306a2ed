package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUriInvalid     = errors.New("uri is empty or unparseable")
	ErrGhostPadFailed = errors.New("failed to add ghost pad to bin")
	ErrUnexpectedEOS  = errors.New("unexpected end of stream")
	ErrPipelineFrozen = errors.New("no frames received before timeout")
)

func New(err string) error {
	return errors.New(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// ErrUnavailable means a required framework element factory could not
// produce an element.
func ErrUnavailable(factory string) error {
	return fmt.Errorf("element %s is not available", factory)
}

func ErrInvalidFormat(format interface{}) error {
	return fmt.Errorf("unsupported file format: %v", format)
}

func ErrPadLinkFailed(src, sink, status string) error {
	return fmt.Errorf("failed to link %s to %s: %s", src, sink, status)
}

func ErrPadRequestFailed(element, template string) error {
	return fmt.Errorf("failed to request pad %s from %s", template, element)
}

func ErrMissingPad(element, pad string) error {
	return fmt.Errorf("element %s has no %s pad", element, pad)
}

func ErrGstPipelineError(err error) error {
	return fmt.Errorf("pipeline error: %w", err)
}

// ErrInvalidState is recoverable, the operation is reported and dropped.
func ErrInvalidState(op, state string) error {
	return fmt.Errorf("cannot %s while %s", op, state)
}

type ErrArray struct {
	errs []error
}

func (e *ErrArray) AppendErr(err error) {
	e.errs = append(e.errs, err)
}

func (e *ErrArray) Check(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

func (e *ErrArray) ToError() error {
	if len(e.errs) == 0 {
		return nil
	}
	msg := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msg = append(msg, err.Error())
	}
	return errors.New(strings.Join(msg, "\n"))
}

package service

import (
	"errors"
	"fmt"
)

// InputError reports an invalid upload: missing file, wrong content type or
// an oversized document. It is surfaced to the caller as a 400.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func newInputError(format string, args ...any) *InputError {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// ExtractionError reports a total extraction failure: every model failed or
// no usable response came back. Individual missing fields are never an
// ExtractionError; they degrade to empty strings.
type ExtractionError struct {
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field value that cannot be used where the caller
// strictly requires it, currently only an unusable invoice date when derived
// fields are mandatory.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsInputError reports whether err is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsExtractionError reports whether err is an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

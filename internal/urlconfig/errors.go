package urlconfig

import "fmt"

// EncodeError indicates a settings object could not be turned into a token.
type EncodeError struct {
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encoding config: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("encoding config: %s", e.Reason)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a token failed a structural or validation check.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding config: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("decoding config: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

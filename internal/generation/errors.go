package generation

import "fmt"

// Operations reported in GenerationError.
const (
	OpProfile = "generate profile"
	OpTurn    = "send turn"
)

// GenerationError reports a failed generation call: the provider errored,
// returned nothing, or returned a payload that did not decode.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

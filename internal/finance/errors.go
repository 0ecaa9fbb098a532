package finance

import "fmt"

// ComputeError reports that the decomposition engine could not process a
// record. It carries the original payload for diagnostics so the caller
// never sees a partially computed result.
type ComputeError struct {
	Payload any
	Reason  string
}

func newComputeError(payload any, cause any) *ComputeError {
	return &ComputeError{Payload: payload, Reason: fmt.Sprint(cause)}
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("financial decomposition failed: %s", e.Reason)
}

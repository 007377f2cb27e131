package b2ginfo

import "fmt"

// ErrAllCandidatesFailed is returned when every location in an ordered
// fallback list failed. Last carries the final underlying failure;
// intermediate ones are logged but not retained.
type ErrAllCandidatesFailed struct {
	Attempts int
	Last     error
}

func (e *ErrAllCandidatesFailed) Error() string {
	return fmt.Sprintf("all %d candidate locations failed, last error: %v", e.Attempts, e.Last)
}

func (e *ErrAllCandidatesFailed) Unwrap() error {
	return e.Last
}

package types

import "fmt"

// ServiceError means the AI call failed: either a non-retryable fault or
// transient connectivity faults that exhausted the retry budget. Attempts is
// how many calls were made before giving up.
type ServiceError struct {
	Attempts int
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ai service failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ParseError means none of the parsing strategies found a JSON array in the
// response. Raw keeps the original text so the caller can surface it
// verbatim for diagnosis.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no JSON array of suggestions found in response (%d bytes)", len(e.Raw))
}

// ValidationError records one suggestion element that was dropped during
// parsing. Dropping is per-element: one bad element never aborts the set.
type ValidationError struct {
	Index  int // 1-based position in the parsed array
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("suggestion %d: %s", e.Index, e.Reason)
}

// FetchError means the media download failed. Fatal to the extract action
// only; the suggestion set is untouched.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractError records one clip whose encode failed. Isolated per item; the
// batch continues.
type ExtractError struct {
	Index      int // 1-based position in the suggestion set
	Diagnostic string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("clip %d: %s", e.Index, e.Diagnostic)
}

// IOError means the input media or output directory is unusable. Fatal:
// raised before any per-item work starts.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

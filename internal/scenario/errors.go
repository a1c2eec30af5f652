package scenario

import (
	"fmt"
)

// ParseError reports a scenario document that is not well-formed XML.
// Missing sections never produce a ParseError.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scenario parse error: %s: %v", e.Reason, e.Err)
	}
	return "scenario parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchError reports a transport failure or a non-success response while
// retrieving the scenario document. Status is 0 for transport failures.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

package feed

import "fmt"

// FetchError covers network failures, timeouts and non-2xx responses while
// retrieving a supplier document.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError covers malformed supplier documents.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError covers a catalog store rejection of a chunk write. Chunk is the
// 1-based index of the failed chunk; earlier chunks stay written.
type WriteError struct {
	Chunk int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write chunk %d: %v", e.Chunk, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

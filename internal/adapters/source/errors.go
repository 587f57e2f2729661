package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for dataset load errors.
var (
	ErrFetch = errors.New("dataset fetch failed")
	ErrParse = errors.New("dataset parse failed")
	ErrEmpty = errors.New("dataset has no header row")
)

// StatusError reports a non-2xx HTTP response from the data source.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status fetching dataset: %d", e.Code)
}

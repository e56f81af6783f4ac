package torrent

import "fmt"

// FetchError is a failure to obtain a torrent remotely.
// It is transient: it is never persisted and a later run retries.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch torrent %s: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

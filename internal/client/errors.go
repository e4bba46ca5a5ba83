package client

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind int

const (
	// TransportFailure means the request could not complete: connection
	// refused, DNS, timeout or cancellation.
	TransportFailure FetchErrorKind = iota
	// BadResponse means the server answered, but with a non-2xx status or a
	// body that is not a snapshot.
	BadResponse
)

func (k FetchErrorKind) String() string {
	switch k {
	case TransportFailure:
		return "transport failure"
	case BadResponse:
		return "bad response"
	default:
		return fmt.Sprintf("FetchErrorKind(%d)", int(k))
	}
}

// Sentinels matched by FetchError.Is.
var (
	ErrTransportFailure = errors.New("transport failure")
	ErrBadResponse      = errors.New("bad response")
)

// FetchError is the single failure type returned by FetchSnapshot.
type FetchError struct {
	Kind       FetchErrorKind
	Path       string
	StatusCode int // 0 unless the server answered
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is match on ErrTransportFailure / ErrBadResponse.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransportFailure:
		return e.Kind == TransportFailure
	case ErrBadResponse:
		return e.Kind == BadResponse
	}
	return false
}

func transportErr(path string, err error) error {
	return &FetchError{Kind: TransportFailure, Path: path, Err: err}
}

// Classify wraps err as a FetchError if it is not one already. Anything
// unrecognised is treated as a transport failure.
func Classify(path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return transportErr(path, err)
}

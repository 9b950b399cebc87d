// client/errors.go
package client

import "fmt"

// ErrorKind classifies a fetch failure. The set is closed; presentation code
// maps all kinds to one generic message but diagnostics keep the distinction.
type ErrorKind int

const (
	// ErrNetwork covers transport failures: refused connections, DNS,
	// timeouts, cancelled contexts.
	ErrNetwork ErrorKind = iota
	// ErrBadStatus covers responses outside the 2xx range.
	ErrBadStatus
	// ErrDecode covers well-formed HTTP responses whose body could not be
	// decoded.
	ErrDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNetwork:
		return "network"
	case ErrBadStatus:
		return "bad_status"
	case ErrDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is a classified fetch failure. Status is set only for
// ErrBadStatus.
type FetchError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == ErrBadStatus {
		return fmt.Sprintf("fetch failed (%s): status %d", e.Kind, e.Status)
	}
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Package apperr defines the error taxonomy shared by the checkout domain
// and the HTTP layer. Every error that may reach a client carries a stable
// machine-readable code and a human-readable message.
package apperr

import (
	"github.com/go-faster/errors"
)

// Kind classifies an error by how the caller is expected to react to it.
type Kind uint8

const (
	// KindInternal is an unexpected failure. Its message is never shown to clients.
	KindInternal Kind = iota
	// KindValidation is malformed input. Never retried automatically.
	KindValidation
	// KindNotFound is a missing entity.
	KindNotFound
	// KindConflict is a lost race on a shared counter (stock, usage limit).
	// Safe to retry once.
	KindConflict
	// KindState is a request that does not fit the current state
	// (double redemption, stale price). The client should refresh.
	KindState
	// KindDependency is a failed call to a collaborator. Retryable by the
	// caller with backoff.
	KindDependency
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// Error is a classified error with a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// New returns a classified error without a cause. Sentinels are declared
// with New and compared with errors.Is.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap classifies err. It returns nil if err is nil.
func Wrap(err error, kind Kind, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Detailer is implemented by errors that carry structured context for the
// client, such as the threshold a discount code failed.
type Detailer interface {
	Details() map[string]string
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when err is not classified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// DetailsOf returns the details of the first Detailer in err's chain.
func DetailsOf(err error) map[string]string {
	var d Detailer
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}

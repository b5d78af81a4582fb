package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Kind tags an Error with the failure class callers branch on.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidRequest: caller-supplied data failed a precondition;
	// no statement was dispatched.
	KindInvalidRequest
	// KindCanceled: the caller's context was canceled or its deadline
	// passed while the operation was in flight.
	KindCanceled
	// KindConnection: a session could not be established or was lost.
	KindConnection
	// KindStore: the store rejected or failed a well-formed statement,
	// constraint violations included.
	KindStore
	// KindMapping: a result row did not match the expected shape.
	// Indicates schema drift and is always a defect.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindCanceled:
		return "canceled"
	case KindConnection:
		return "connection"
	case KindStore:
		return "store"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged failure. Error() returns only the sanitized
// message; the underlying cause (which may carry DSN fragments or
// constraint details) stays behind Unwrap.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.cause }

// KindOf reports the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Classify wraps an error coming back from database/sql with its kind.
// Already-classified errors pass through untouched so repositories can
// apply it uniformly at their boundary without double wrapping.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindCanceled, op+": canceled", err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return Wrap(KindStore, op+": store rejected statement (SQLSTATE "+string(pqErr.Code)+")", err)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return Wrap(KindConnection, op+": lost connection to the store", err)
	}
	// database/sql reports typed-scan failures with this prefix; there is
	// no sentinel to match on.
	if strings.HasPrefix(err.Error(), "sql: Scan error") {
		return Wrap(KindMapping, op+": row did not match the expected shape", err)
	}
	return Wrap(KindStore, op+": store operation failed", err)
}

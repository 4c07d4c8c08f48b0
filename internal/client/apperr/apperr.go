// Package apperr defines the user-facing error taxonomy of the PlantGuard
// client. Each kind is a sentinel matched with errors.Is; the concrete
// *Error carries the message shown to the user and unwraps to its cause.
package apperr

import "errors"

var (
	ErrAuth            = errors.New("auth error")
	ErrValidation      = errors.New("validation error")
	ErrDataUnavailable = errors.New("data unavailable")
	ErrPersistence     = errors.New("persistence error")
	ErrFetch           = errors.New("fetch error")
	ErrDelete          = errors.New("delete error")
)

type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool { return target == e.Kind }

func newError(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Auth reports a failed sign-up, sign-in or sign-out. msg is normally the
// backend's message verbatim.
func Auth(msg string, cause error) error { return newError(ErrAuth, msg, cause) }

func Validation(msg string) error { return newError(ErrValidation, msg, nil) }

func DataUnavailable(msg string, cause error) error { return newError(ErrDataUnavailable, msg, cause) }

func Persistence(msg string, cause error) error { return newError(ErrPersistence, msg, cause) }

func Fetch(msg string, cause error) error { return newError(ErrFetch, msg, cause) }

func Delete(msg string, cause error) error { return newError(ErrDelete, msg, cause) }

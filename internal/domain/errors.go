package domain

import "errors"

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error is a business rule failure. Its message is meant to be shown to the
// caller as is.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches the same sentinel, or any error of the same kind when target is
// one of the kind markers (ErrValidation, ErrConflict, ...).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg == "" {
		return t.Kind == e.Kind
	}
	return t == e
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

var (
	ErrInvalidAmount       = newError(KindValidation, "amount must be a positive number")
	ErrInvalidStatus       = newError(KindValidation, "unknown payment status")
	ErrInvalidCurrency     = newError(KindValidation, "currency must be a 3-letter code")
	ErrIncompleteAddress   = newError(KindValidation, "street, suburb, city and postcode must be supplied together")
	ErrInvalidPayoutMethod = newError(KindValidation, "unknown payout method")
	ErrInvalidRole         = newError(KindValidation, "unknown role")
	ErrEmptyUsername       = newError(KindValidation, "username is required")
	ErrEmptyPassword       = newError(KindValidation, "password is required")

	ErrDuplicateUsername = newError(KindConflict, "username already taken")
	ErrAddressInUse      = newError(KindConflict, "address already registered")
	ErrIllegalTransition = newError(KindConflict, "payment status transition not allowed")
	ErrLastAdmin         = newError(KindConflict, "can't delete the last admin account")
	ErrOpenPayments      = newError(KindConflict, "account has pending or processing payments")

	ErrAccountNotFound = newError(KindNotFound, "account not found")
	ErrPaymentNotFound = newError(KindNotFound, "payment not found")

	ErrAdminOnly          = newError(KindForbidden, "admin role required")
	ErrInvalidCredentials = newError(KindUnauthorized, "invalid credentials")
)

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) ErrorKind {
	for _, kind := range []*Error{ErrValidation, ErrConflict, ErrNotFound, ErrForbidden, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return kind.Kind
		}
	}
	return ""
}

package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can map it to a response without
// inspecting error strings.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// Error carries a kind, a stable machine-readable code and an optional cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Authorization(code, message string) error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func NotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// Storage wraps a backend failure as an opaque storage error. The cause is
// retained for logs but never echoed to clients.
func Storage(code string, err error) error {
	return &Error{Kind: KindStorage, Code: code, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// CodeOf returns the machine code of err, or "" when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

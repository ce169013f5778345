// Package herrors defines the semantic error kinds shared by every
// transfer-core package. It mirrors the error enum of the Rust original
// this module was ported from, without imitating Rust idiom: a typed
// Kind plus a wrapping *Error that supports errors.Is/As via Unwrap.
package herrors

import (
	"errors"
	"fmt"
)

// Kind classifies a transfer-core failure.
type Kind string

const (
	KindOAuth2          Kind = "oauth2"
	KindGoogleDrive     Kind = "google_drive"
	KindS3              Kind = "s3"
	KindParse           Kind = "parse"
	KindBuilder         Kind = "builder"
	KindInvalidArgument Kind = "invalid_argument"
	KindEnvCredential   Kind = "env_credential"
	KindConnection      Kind = "connection"
	KindNotExistFile    Kind = "not_exist_file"
	KindFileOperation   Kind = "file_operation"
	KindUnsupported     Kind = "unsupported"
	KindUnknown         Kind = "unknown"
)

// Error is the concrete error type returned by this module's packages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind alone via a zero-value sentinel, e.g.
// errors.Is(err, herrors.New(herrors.KindNotExistFile, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a bare *Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error that carries an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Newf and Wrapf are fmt.Sprintf-flavored convenience constructors.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	return Wrap(kind, fmt.Sprintf(format, args...), err)
}

// KindOf extracts the Kind from err, or KindUnknown if err isn't ours.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Convenience constructors for the common call sites.
func InvalidArgument(format string, args ...any) *Error {
	return Newf(KindInvalidArgument, format, args...)
}

func Builder(format string, args ...any) *Error {
	return Newf(KindBuilder, format, args...)
}

func Connection(err error, format string, args ...any) *Error {
	return Wrapf(KindConnection, err, format, args...)
}

func GoogleDrive(format string, args ...any) *Error {
	return Newf(KindGoogleDrive, format, args...)
}

func S3(err error, format string, args ...any) *Error {
	return Wrapf(KindS3, err, format, args...)
}

func FileOperation(err error, format string, args ...any) *Error {
	return Wrapf(KindFileOperation, err, format, args...)
}

func Unsupported(format string, args ...any) *Error {
	return Newf(KindUnsupported, format, args...)
}

func NotExistFile(format string, args ...any) *Error {
	return Newf(KindNotExistFile, format, args...)
}

func Unknown(format string, args ...any) *Error {
	return Newf(KindUnknown, format, args...)
}

package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures so callers can branch without reading messages.
type ErrorKind string

const (
	KindDuplicateAccount   ErrorKind = "DuplicateAccount"
	KindInvalidCredentials ErrorKind = "InvalidCredentials"
	KindUnsupportedFormat  ErrorKind = "UnsupportedFormat"
	KindFileNotFound       ErrorKind = "FileNotFound"
	KindAnalysisNotFound   ErrorKind = "AnalysisNotFound"
	KindInvalidInput       ErrorKind = "InvalidInput"
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindInternal           ErrorKind = "Internal"
)

type AppError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError of the same kind, so errors.Is works against the
// sentinel values below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateAccount   = &AppError{Kind: KindDuplicateAccount, StatusCode: http.StatusConflict}
	ErrInvalidCredentials = &AppError{Kind: KindInvalidCredentials, StatusCode: http.StatusUnauthorized}
	ErrUnsupportedFormat  = &AppError{Kind: KindUnsupportedFormat, StatusCode: http.StatusUnsupportedMediaType}
	ErrFileNotFound       = &AppError{Kind: KindFileNotFound, StatusCode: http.StatusNotFound}
	ErrAnalysisNotFound   = &AppError{Kind: KindAnalysisNotFound, StatusCode: http.StatusNotFound}
)

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func newError(kind ErrorKind, status int, message string) *AppError {
	return &AppError{Kind: kind, StatusCode: status, Message: message}
}

func NewDuplicateAccountError(message string) *AppError {
	return newError(KindDuplicateAccount, http.StatusConflict, message)
}

func NewInvalidCredentialsError(message string) *AppError {
	return newError(KindInvalidCredentials, http.StatusUnauthorized, message)
}

func NewUnsupportedFormatError(message string) *AppError {
	return newError(KindUnsupportedFormat, http.StatusUnsupportedMediaType, message)
}

func NewFileNotFoundError(message string) *AppError {
	return newError(KindFileNotFound, http.StatusNotFound, message)
}

func NewAnalysisNotFoundError(message string) *AppError {
	return newError(KindAnalysisNotFound, http.StatusNotFound, message)
}

func NewBadRequestError(message string) *AppError {
	return newError(KindInvalidInput, http.StatusBadRequest, message)
}

func NewUnauthorizedError(message string) *AppError {
	return newError(KindUnauthorized, http.StatusUnauthorized, message)
}

func NewInternalError(message string) *AppError {
	return newError(KindInternal, http.StatusInternalServerError, message)
}

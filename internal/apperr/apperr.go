// Package apperr классифицирует ошибки клиента по видам, понятным пользователю.
package apperr

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/session"
	"github.com/mmeshcher/antrian-client/internal/validation"
)

// Kind определяет вид ошибки.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
	KindNetwork
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error содержит ошибку, уже переведённую в сообщение для пользователя.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создаёт ошибку с указанным видом и сообщением.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Classify определяет вид исходной ошибки.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	var vErr *validation.Error
	var pErr *builder.PreconditionError
	if errors.As(err, &vErr) || errors.As(err, &pErr) {
		return KindValidation
	}

	if errors.Is(err, session.ErrUnauthenticated) {
		return KindAuth
	}

	var sErr *api.StatusError
	if errors.As(err, &sErr) {
		return classifyStatus(sErr.StatusCode)
	}

	if isNetwork(err) {
		return KindNetwork
	}
	return KindUnknown
}

func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusConflict:
		return KindConflict
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return KindValidation
	case code >= 500:
		return KindServer
	}
	return KindUnknown
}

func isNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a backend failure. Callers branch on the kind, never
// on message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindServer
	KindBadCredentials
	KindInactiveUser
)

// Error is a non-2xx response from the backend. Detail carries the JSON
// `detail` field when the body had one.
type Error struct {
	Status int
	Detail string
	Kind   ErrorKind
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

const (
	detailBadCredentials = "Incorrect username or password"
	detailInactiveUser   = "Inactive user"
)

func classify(status int, detail string) ErrorKind {
	switch detail {
	case detailBadCredentials:
		return KindBadCredentials
	case detailInactiveUser:
		return KindInactiveUser
	}
	switch status {
	case 400:
		return KindBadRequest
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	}
	if status >= 500 {
		return KindServer
	}
	return KindUnknown
}

// Classify returns the kind of any error. Errors produced by this package
// carry their kind; anything else (transport failures, wrapped errors) falls
// back to scanning the message, preserving the historical mapping.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, detailBadCredentials):
		return KindBadCredentials
	case strings.Contains(msg, detailInactiveUser):
		return KindInactiveUser
	case strings.Contains(msg, "401"), strings.Contains(msg, "Unauthorized"):
		return KindUnauthorized
	case strings.Contains(msg, "403"), strings.Contains(msg, "Forbidden"):
		return KindForbidden
	case strings.Contains(msg, "404"):
		return KindNotFound
	case strings.Contains(msg, "400"):
		return KindBadRequest
	case strings.Contains(msg, "500"):
		return KindServer
	}
	return KindUnknown
}

// IsSessionExpired reports whether the error means the bearer token is no
// longer accepted and the session must be torn down.
func IsSessionExpired(err error) bool {
	return Classify(err) == KindUnauthorized
}

// MessageKey maps an error kind to its lang key. ok is false for kinds that
// have no dedicated template; callers fall back to the generic one with the
// raw message appended.
func MessageKey(kind ErrorKind) (string, bool) {
	switch kind {
	case KindUnauthorized:
		return "err_session_expired", true
	case KindForbidden:
		return "err_forbidden", true
	case KindNotFound:
		return "err_not_found", true
	case KindBadRequest:
		return "err_bad_request", true
	case KindServer:
		return "err_server", true
	case KindBadCredentials:
		return "err_bad_credentials", true
	case KindInactiveUser:
		return "err_inactive_user", true
	}
	return "", false
}

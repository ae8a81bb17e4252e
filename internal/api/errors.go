package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GenericMessage is shown when the server gives no usable message.
const GenericMessage = "Something went wrong"

// Kind classifies a failed call.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

// ErrUnauthorized matches any *Error of KindUnauthorized via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Error is returned by every Client call that does not succeed.
type Error struct {
	Kind       Kind
	StatusCode int
	Method     string
	Path       string
	// Message is the "message" field of the response body, if any.
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %s /%s", e.Method, e.Path)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind == KindUnauthorized
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// UserMessage converts err into the short text shown to the user. Client
// errors surface the server's message; server and transport failures use
// GenericMessage. Other errors (local validation) are shown as is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindValidation, KindUnauthorized:
			if apiErr.Message != "" {
				return apiErr.Message
			}
		}
		return GenericMessage
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Package errorx implements coded errors for the HTTP surface: every
// user-visible failure carries a registered business code that maps to an
// HTTP status and a safe external message.
package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes a registered error code.
type Coder interface {
	// Code returns the business error code.
	Code() int

	// HTTPStatus returns the associated HTTP status code.
	HTTPStatus() int

	// String returns the external (user-safe) message.
	String() string

	// Reference returns a document link for the error, if any.
	Reference() string
}

var (
	mu     sync.RWMutex
	coders = map[int]Coder{}
)

// unknownCoder is returned for errors that carry no registered code.
var unknownCoder = defaultCoder{
	code: 1, http: http.StatusInternalServerError,
	msg: "An internal server error occurred",
}

type defaultCoder struct {
	code int
	http int
	msg  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return "" }

// Register registers a Coder, replacing any existing registration.
func Register(coder Coder) {
	if coder.Code() == unknownCoder.Code() {
		panic("code 1 is reserved as the unknown error code")
	}
	mu.Lock()
	defer mu.Unlock()
	coders[coder.Code()] = coder
}

// MustRegister registers a Coder and panics if the code is already taken.
func MustRegister(coder Coder) {
	if coder.Code() == unknownCoder.Code() {
		panic("code 1 is reserved as the unknown error code")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := coders[coder.Code()]; ok {
		panic(fmt.Sprintf("code %d is already registered", coder.Code()))
	}
	coders[coder.Code()] = coder
}

// withCode is an error annotated with a business code and optional cause.
type withCode struct {
	code  int
	msg   string
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %s", w.msg, w.cause.Error())
	}
	return w.msg
}

func (w *withCode) Unwrap() error { return w.cause }

// WithCode creates a coded error.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...)}
}

// WrapC wraps err with a business code and a contextual message.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{code: code, msg: fmt.Sprintf(format, args...), cause: err}
}

// ParseCoder resolves the Coder for err. Errors without a registered code
// resolve to the unknown coder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	if wc, ok := err.(*withCode); ok { //nolint:errorlint // top-level code wins
		mu.RLock()
		defer mu.RUnlock()
		if coder, ok := coders[wc.code]; ok {
			return coder
		}
	}
	return unknownCoder
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	if wc, ok := err.(*withCode); ok { //nolint:errorlint
		return wc.code == code
	}
	return false
}

// Package errx provides typed, registry-backed application errors that carry
// an HTTP status and structured details alongside the usual error chain.
package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error for callers that need to branch on its nature
// rather than its exact code.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Error is the application error carried across package boundaries.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"status"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key/value pair to the error and returns it for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// New creates an ad-hoc error of the given type.
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: statusForType(t),
	}
}

// Wrap wraps err with a message and type. A nil err still yields an error so
// call sites can wrap unconditionally inside an `if err != nil` branch.
func Wrap(err error, message string, t Type) *Error {
	e := New(message, t)
	e.Err = err
	return e
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err's chain contains an *Error of type t.
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// IsCode reports whether err's chain contains an *Error with the given code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code.String()
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusUnauthorized
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ============================================================================
// Registry
// ============================================================================

// Code identifies a registered error definition.
type Code struct {
	value string
}

func (c Code) String() string {
	return c.value
}

type definition struct {
	errType Type
	status  int
	message string
}

// Registry namespaces error codes for one domain, e.g. "CONVERSATION".
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[string]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[string]definition),
	}
}

// Register declares a code. It is meant to be called from package-level var
// blocks; registering the same code twice panics.
func (r *Registry) Register(code string, t Type, status int, message string) Code {
	full := r.prefix + "." + code

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic("errx: duplicate error code " + full)
	}
	r.defs[full] = definition{errType: t, status: status, message: message}
	return Code{value: full}
}

// New instantiates a registered error.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code.value]
	r.mu.RUnlock()
	if !ok {
		return New("unregistered error code "+code.value, TypeInternal)
	}
	return &Error{
		Code:       code.value,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// NewWithCause instantiates a registered error wrapping err.
func (r *Registry) NewWithCause(code Code, err error) *Error {
	return r.New(code).WithCause(err)
}

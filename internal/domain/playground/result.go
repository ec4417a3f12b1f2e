package playground

import "fmt"

// ErrorKind identifies why an operation failed. The value is surfaced
// verbatim in the envelope's error field.
type ErrorKind string

const (
	KindEmptyPrompt          ErrorKind = "EmptyPrompt"
	KindEmptyName            ErrorKind = "EmptyName"
	KindDuplicateName        ErrorKind = "DuplicateName"
	KindModelNotFound        ErrorKind = "ModelNotFound"
	KindInvalidModel         ErrorKind = "InvalidModel"
	KindTemplateNotFound     ErrorKind = "TemplateNotFound"
	KindInvalidConfiguration ErrorKind = "InvalidConfiguration"
	KindInternal             ErrorKind = "Internal"
)

// IsNotFound reports whether the kind is a lookup miss.
func (k ErrorKind) IsNotFound() bool {
	return k == KindModelNotFound || k == KindTemplateNotFound
}

// IsValidation reports whether the caller can recover by correcting input.
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindEmptyPrompt, KindEmptyName, KindDuplicateName, KindInvalidModel, KindInvalidConfiguration:
		return true
	}
	return false
}

// Result is the envelope every service operation returns.
type Result[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Error   ErrorKind `json:"error,omitempty"`
	Message string    `json:"message"`
}

// Success wraps data in a successful envelope.
func Success[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

// Failure builds a failed envelope carrying kind.
func Failure[T any](kind ErrorKind, message string) Result[T] {
	return Result[T]{Success: false, Error: kind, Message: message}
}

// Err converts a failed envelope into an *Error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Kind: r.Error, Message: r.Message}
}

// Error is the Go error form of a failed envelope.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

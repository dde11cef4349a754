// Copyright 2016 Aleksandr Demakin. All rights reserved.

package ipc

import "fmt"

// Kind classifies an ipc failure. Every error returned by this
// library, once unwrapped, carries exactly one Kind.
type Kind uint8

const (
	// InvalidArgument means a malformed name, contradictory open
	// flags, or a non-positive size/attribute value.
	InvalidArgument Kind = iota + 1
	// AlreadyExists means exclusive creation was requested,
	// but the object is already present.
	AlreadyExists
	// NotFound means open of an absent object, or unlink of an
	// absent name.
	NotFound
	// PermissionDenied means the object's mode bits do not permit
	// the requested access.
	PermissionDenied
	// WouldBlock means a non-blocking operation could not
	// complete immediately.
	WouldBlock
	// TimedOut means a timed wait elapsed.
	TimedOut
	// Overflow means a semaphore post would exceed the maximum value.
	Overflow
	// MessageTooLarge means the payload exceeds the queue's
	// maximum message size.
	MessageTooLarge
	// OutOfRange means a mapping request exceeds the object size.
	OutOfRange
	// InvalidState means the operation is not valid in the handle's
	// current state, e.g. truncate while a mapping is active.
	InvalidState
	// Closed means the underlying object was closed or removed
	// while the operation was in progress.
	Closed
	// Unsupported means the host does not provide the primitive.
	Unsupported
)

var kindNames = map[Kind]string{
	InvalidArgument:  "invalid argument",
	AlreadyExists:    "already exists",
	NotFound:         "not found",
	PermissionDenied: "permission denied",
	WouldBlock:       "would block",
	TimedOut:         "timed out",
	Overflow:         "overflow",
	MessageTooLarge:  "message too large",
	OutOfRange:       "out of range",
	InvalidState:     "invalid state",
	Closed:           "closed",
	Unsupported:      "unsupported",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a classified ipc failure.
// Op names the failed operation, Err is the underlying cause, if any.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError returns an error of the given kind with no underlying cause.
func NewError(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

// Cause returns the underlying error. It is nil, if the Error
// itself is the root cause.
func (e *Error) Cause() error {
	return e.Err
}

type causer interface {
	Cause() error
}

// ErrKind returns the Kind of the first *Error found in err's cause
// chain, or 0, if there is none.
func ErrKind(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return 0
}

// IsWouldBlock reports whether err is a WouldBlock error.
func IsWouldBlock(err error) bool {
	return ErrKind(err) == WouldBlock
}

// IsTimeout reports whether err is a TimedOut error.
func IsTimeout(err error) bool {
	return ErrKind(err) == TimedOut
}

// IsExist reports whether err is an AlreadyExists error.
func IsExist(err error) bool {
	return ErrKind(err) == AlreadyExists
}

// IsNotExist reports whether err is a NotFound error.
func IsNotExist(err error) bool {
	return ErrKind(err) == NotFound
}

// IsPermission reports whether err is a PermissionDenied error.
func IsPermission(err error) bool {
	return ErrKind(err) == PermissionDenied
}

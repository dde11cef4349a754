// Copyright 2016 Aleksandr Demakin. All rights reserved.

package ipc

import "strings"

// MaxNameLen is the longest object name accepted by the library.
// Individual mechanisms may impose stricter limits.
const MaxNameLen = 255

// Name is a validated posix ipc object name. It begins with a single
// '/' and contains no further separators. A Name is obtained from
// ValidateName and is immutable afterwards.
type Name string

// ValidateName checks raw against the posix naming rules and returns
// it as a Name. It performs no syscalls. Validating an already valid
// Name returns the same value.
func ValidateName(raw string) (Name, error) {
	if len(raw) == 0 {
		return "", NewError(InvalidArgument, "empty object name")
	}
	if raw[0] != '/' {
		return "", NewError(InvalidArgument, "object name must begin with a '/'")
	}
	if len(raw) < 2 {
		return "", NewError(InvalidArgument, "object name must not be '/'")
	}
	if strings.ContainsRune(raw[1:], '/') {
		return "", NewError(InvalidArgument, "object name must contain exactly one '/'")
	}
	if len(raw) > MaxNameLen {
		return "", NewError(InvalidArgument, "object name is too long")
	}
	return Name(raw), nil
}

func (n Name) String() string {
	return string(n)
}

// Base returns the name without the leading separator.
func (n Name) Base() string {
	return strings.TrimPrefix(string(n), "/")
}

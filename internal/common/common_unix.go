// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin dragonfly freebsd linux netbsd openbsd solaris

package common

import (
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// AbsTimeoutToTimeSpec converts a relative timeout into an absolute
// timespec suitable for *_timed syscalls. A negative timeout means
// no timeout, and nil is returned.
func AbsTimeoutToTimeSpec(timeout time.Duration) *unix.Timespec {
	if timeout >= 0 {
		ts := unix.NsecToTimespec(time.Now().Add(timeout).UnixNano())
		return &ts
	}
	return nil
}

// TimeoutToTimeSpec converts a relative timeout into a timespec.
// A negative timeout means no timeout, and nil is returned.
func TimeoutToTimeSpec(timeout time.Duration) *unix.Timespec {
	if timeout >= 0 {
		ts := unix.NsecToTimespec(timeout.Nanoseconds())
		return &ts
	}
	return nil
}

// IsInterruptedSyscallErr reports whether err is a signal
// interruption error.
func IsInterruptedSyscallErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EINTR)
}

// UninterruptedSyscall runs f, retrying it, if it is interrupted
// by a signal. Interruption is never reported to the caller.
func UninterruptedSyscall(f func() error) error {
	for {
		err := f()
		if !IsInterruptedSyscallErr(err) {
			return err
		}
	}
}

// UninterruptedSyscallTimeout runs f with the given relative timeout,
// retrying it with the remaining part of the timeout, if it is
// interrupted by a signal. A negative timeout means no timeout.
func UninterruptedSyscallTimeout(f func(time.Duration) error, timeout time.Duration) error {
	if timeout < 0 {
		return UninterruptedSyscall(func() error { return f(-1) })
	}
	deadline := time.Now().Add(timeout)
	for {
		err := f(timeout)
		if !IsInterruptedSyscallErr(err) {
			return err
		}
		if timeout = time.Until(deadline); timeout < 0 {
			timeout = 0
		}
	}
}

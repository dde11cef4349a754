// Copyright 2016 Aleksandr Demakin. All rights reserved.

package common

import (
	"os"
	"syscall"

	ipc "github.com/nxgtw/posix-ipc"

	"github.com/pkg/errors"
)

// OpenOrCreate performs open/create attempts according to the
// creation bits of flag. creator is called with 'true', if an object
// must be created, and with 'false', if it must be opened.
// It returns true, if the object was created by this call.
// creator must report failures with errors carrying an ipc.Kind.
func OpenOrCreate(creator func(create bool) error, flag int) (bool, error) {
	switch flag & (ipc.O_CREATE | ipc.O_EXCL) {
	case 0:
		return false, creator(false)
	case ipc.O_CREATE | ipc.O_EXCL:
		err := creator(true)
		if err != nil {
			return false, err
		}
		return true, nil
	case ipc.O_CREATE:
		// Somebody may create or unlink the object between our
		// attempts, so we cycle until either one succeeds.
		const attempts = 16
		var err error
		for attempt := 0; attempt < attempts; attempt++ {
			if err = creator(true); !ipc.IsExist(err) {
				return err == nil, err
			}
			if err = creator(false); !ipc.IsNotExist(err) {
				return false, err
			}
		}
		return false, err
	default: // ipc.O_EXCL without ipc.O_CREATE
		return false, ipc.NewError(ipc.InvalidArgument, "exclusive open without create")
	}
}

// CreateFlagsToOsFlags converts the library's creation bits
// into os flags, which can be passed to system calls.
func CreateFlagsToOsFlags(flag int) (int, error) {
	switch flag & (ipc.O_CREATE | ipc.O_EXCL) {
	case 0:
		return 0, nil
	case ipc.O_CREATE:
		return os.O_CREATE, nil
	case ipc.O_CREATE | ipc.O_EXCL:
		return os.O_CREATE | os.O_EXCL, nil
	default:
		return 0, ipc.NewError(ipc.InvalidArgument, "exclusive open without create")
	}
}

// AccessFlagsToOsFlags converts the library's access bits
// into os flags, which can be passed to system calls.
func AccessFlagsToOsFlags(flag int) (int, error) {
	if flag&ipc.O_READ_ONLY != 0 {
		if flag&ipc.O_READWRITE != 0 {
			return 0, ipc.NewError(ipc.InvalidArgument, "incompatible access flags")
		}
		return os.O_RDONLY, nil
	}
	if flag&ipc.O_READWRITE != 0 {
		return os.O_RDWR, nil
	}
	return 0, ipc.NewError(ipc.InvalidArgument, "no access flags")
}

// OpenFlagsToOsFlags resolves both creation and access bits of flag.
// The kernel applies the process umask to permission bits itself,
// so no mask is applied here.
func OpenFlagsToOsFlags(flag int) (int, error) {
	createFlags, err := CreateFlagsToOsFlags(flag)
	if err != nil {
		return 0, err
	}
	accessFlags, err := AccessFlagsToOsFlags(flag)
	if err != nil {
		return 0, err
	}
	return createFlags | accessFlags, nil
}

// ErrnoOf extracts a syscall error code from err, unwrapping
// os.SyscallError and os.PathError.
func ErrnoOf(err error) (syscall.Errno, bool) {
	switch e := err.(type) {
	case syscall.Errno:
		return e, true
	case *os.SyscallError:
		errno, ok := e.Err.(syscall.Errno)
		return errno, ok
	case *os.PathError:
		errno, ok := e.Err.(syscall.Errno)
		return errno, ok
	}
	return 0, false
}

// SyscallErrHasCode reports whether err wraps the given error code.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	errno, ok := ErrnoOf(err)
	return ok && errno == code
}

// KindOfErrno translates a kernel error code into an ipc error kind.
// It returns 0 for codes outside the taxonomy.
func KindOfErrno(errno syscall.Errno) ipc.Kind {
	switch errno {
	case syscall.EEXIST:
		return ipc.AlreadyExists
	case syscall.ENOENT:
		return ipc.NotFound
	case syscall.EACCES, syscall.EPERM:
		return ipc.PermissionDenied
	case syscall.EAGAIN:
		return ipc.WouldBlock
	case syscall.ETIMEDOUT:
		return ipc.TimedOut
	case syscall.EMSGSIZE:
		return ipc.MessageTooLarge
	case syscall.EINVAL, syscall.ENAMETOOLONG:
		return ipc.InvalidArgument
	case syscall.ERANGE, syscall.EOVERFLOW:
		return ipc.Overflow
	case syscall.EBADF:
		return ipc.Closed
	case syscall.ENOSYS:
		return ipc.Unsupported
	}
	return 0
}

// NewSyscallError translates a failed syscall into a kind-carrying
// error. Codes outside the taxonomy are returned wrapped, but
// unclassified.
func NewSyscallError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errno, ok := ErrnoOf(err); ok {
		if kind := KindOfErrno(errno); kind != 0 {
			return &ipc.Error{Kind: kind, Op: op, Err: err}
		}
	}
	return errors.Wrap(err, op)
}

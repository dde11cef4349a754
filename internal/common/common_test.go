// Copyright 2016 Aleksandr Demakin. All rights reserved.

package common

import (
	"os"
	"syscall"
	"testing"

	ipc "github.com/nxgtw/posix-ipc"

	"github.com/stretchr/testify/assert"
)

func TestOpenOrCreatePlainOpen(t *testing.T) {
	a := assert.New(t)
	var calls []bool
	created, err := OpenOrCreate(func(create bool) error {
		calls = append(calls, create)
		return nil
	}, ipc.O_READWRITE)
	a.NoError(err)
	a.False(created)
	a.Equal([]bool{false}, calls)
}

func TestOpenOrCreateExclusive(t *testing.T) {
	a := assert.New(t)
	created, err := OpenOrCreate(func(create bool) error {
		a.True(create)
		return nil
	}, ipc.O_CREATE|ipc.O_EXCL)
	a.NoError(err)
	a.True(created)
	_, err = OpenOrCreate(func(create bool) error {
		return ipc.NewError(ipc.AlreadyExists, "SHM_OPEN")
	}, ipc.O_CREATE|ipc.O_EXCL)
	a.Equal(ipc.AlreadyExists, ipc.ErrKind(err))
}

func TestOpenOrCreateRetriesRace(t *testing.T) {
	a := assert.New(t)
	// the object appears between the create and the open attempts.
	attempt := 0
	created, err := OpenOrCreate(func(create bool) error {
		attempt++
		if create {
			return ipc.NewError(ipc.AlreadyExists, "SHM_OPEN")
		}
		if attempt < 4 {
			return ipc.NewError(ipc.NotFound, "SHM_OPEN")
		}
		return nil
	}, ipc.O_CREATE)
	a.NoError(err)
	a.False(created)
}

func TestOpenOrCreateCreates(t *testing.T) {
	a := assert.New(t)
	created, err := OpenOrCreate(func(create bool) error {
		a.True(create)
		return nil
	}, ipc.O_CREATE)
	a.NoError(err)
	a.True(created)
}

func TestOpenOrCreateExclusiveWithoutCreate(t *testing.T) {
	a := assert.New(t)
	_, err := OpenOrCreate(func(create bool) error {
		t.Error("creator must not be called")
		return nil
	}, ipc.O_EXCL)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
}

func TestCreateFlagsToOsFlags(t *testing.T) {
	a := assert.New(t)
	flags, err := CreateFlagsToOsFlags(0)
	a.NoError(err)
	a.Equal(0, flags)
	flags, err = CreateFlagsToOsFlags(ipc.O_CREATE)
	a.NoError(err)
	a.Equal(os.O_CREATE, flags)
	flags, err = CreateFlagsToOsFlags(ipc.O_CREATE | ipc.O_EXCL)
	a.NoError(err)
	a.Equal(os.O_CREATE|os.O_EXCL, flags)
	_, err = CreateFlagsToOsFlags(ipc.O_EXCL)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
}

func TestAccessFlagsToOsFlags(t *testing.T) {
	a := assert.New(t)
	flags, err := AccessFlagsToOsFlags(ipc.O_READ_ONLY)
	a.NoError(err)
	a.Equal(os.O_RDONLY, flags)
	flags, err = AccessFlagsToOsFlags(ipc.O_READWRITE)
	a.NoError(err)
	a.Equal(os.O_RDWR, flags)
	_, err = AccessFlagsToOsFlags(ipc.O_READ_ONLY | ipc.O_READWRITE)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
	_, err = AccessFlagsToOsFlags(0)
	a.Equal(ipc.InvalidArgument, ipc.ErrKind(err))
}

func TestKindOfErrno(t *testing.T) {
	a := assert.New(t)
	codes := map[syscall.Errno]ipc.Kind{
		syscall.EEXIST:       ipc.AlreadyExists,
		syscall.ENOENT:       ipc.NotFound,
		syscall.EACCES:       ipc.PermissionDenied,
		syscall.EPERM:        ipc.PermissionDenied,
		syscall.EAGAIN:       ipc.WouldBlock,
		syscall.ETIMEDOUT:    ipc.TimedOut,
		syscall.EMSGSIZE:     ipc.MessageTooLarge,
		syscall.EINVAL:       ipc.InvalidArgument,
		syscall.ENAMETOOLONG: ipc.InvalidArgument,
		syscall.EBADF:        ipc.Closed,
		syscall.ENOSYS:       ipc.Unsupported,
		syscall.EIO:          0,
	}
	for errno, kind := range codes {
		a.Equal(kind, KindOfErrno(errno), "errno %v", errno)
	}
}

func TestErrnoOf(t *testing.T) {
	a := assert.New(t)
	errno, ok := ErrnoOf(syscall.ENOENT)
	a.True(ok)
	a.Equal(syscall.ENOENT, errno)
	errno, ok = ErrnoOf(os.NewSyscallError("MQ_OPEN", syscall.EEXIST))
	a.True(ok)
	a.Equal(syscall.EEXIST, errno)
	errno, ok = ErrnoOf(&os.PathError{Op: "open", Path: "/dev/shm/obj", Err: syscall.EACCES})
	a.True(ok)
	a.Equal(syscall.EACCES, errno)
	_, ok = ErrnoOf(nil)
	a.False(ok)
}

func TestNewSyscallError(t *testing.T) {
	a := assert.New(t)
	a.NoError(NewSyscallError("SHM_OPEN", nil))
	err := NewSyscallError("SHM_OPEN", os.NewSyscallError("open", syscall.ENOENT))
	a.Equal(ipc.NotFound, ipc.ErrKind(err))
	// codes outside the taxonomy stay unclassified.
	err = NewSyscallError("SHM_OPEN", os.NewSyscallError("open", syscall.EIO))
	a.Error(err)
	a.Equal(ipc.Kind(0), ipc.ErrKind(err))
}

// Copyright 2016 Aleksandr Demakin. All rights reserved.

package sem

import (
	"math"
	"os"
	"syscall"
	"time"
	"unsafe"

	"github.com/nxgtw/posix-ipc/internal/allocator"
	"github.com/nxgtw/posix-ipc/internal/common"

	"golang.org/x/sys/unix"
)

const (
	cFUTEX_WAIT = 0
	cFUTEX_WAKE = 1

	cFutexWakeAll = math.MaxInt32
)

// FutexWait checks if the value at addr equals value, and, if it
// does, waits for a FutexWake call at the same address for not
// longer, than timeout. A negative timeout means no timeout.
// The futex is a process-shared one.
func FutexWait(addr unsafe.Pointer, value uint32, timeout time.Duration) error {
	_, err := futex(addr, cFUTEX_WAIT, value, unsafe.Pointer(common.TimeoutToTimeSpec(timeout)), nil, 0)
	return err
}

// FutexWake wakes count waiters at addr. It returns the number of
// waiters actually woken.
func FutexWake(addr unsafe.Pointer, count uint32) (int, error) {
	woken, err := futex(addr, cFUTEX_WAKE, count, nil, nil, 0)
	return int(woken), err
}

func futex(addr unsafe.Pointer, op int32, val uint32, ts, addr2 unsafe.Pointer, val3 uint32) (int32, error) {
	r1, _, err := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(addr),
		uintptr(op),
		uintptr(val),
		uintptr(ts),
		uintptr(addr2),
		uintptr(val3))
	allocator.Use(addr)
	allocator.Use(ts)
	if err != syscall.Errno(0) {
		return 0, os.NewSyscallError("FUTEX", err)
	}
	return int32(r1), nil
}

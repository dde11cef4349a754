// Copyright 2016 Aleksandr Demakin. All rights reserved.

package sem

import (
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/common"
)

// SemValueMax is the maximum value a semaphore can hold.
// Post fails with an Overflow error instead of exceeding it.
const SemValueMax = 1<<31 - 1

// Semaphore is a named counting semaphore, which can be used to
// control access to a shared resource by several processes.
// Wait, TryWait, WaitTimeout, Post, and Value may be called
// concurrently from several goroutines. Construction, Close, and
// Destroy must be serialized by the caller.
type Semaphore semaphore

// NewSemaphore opens or creates a semaphore with the given name.
//	name - object name. must begin with '/' and contain no further '/'s.
//	flag - creation bits, a combination of O_CREATE and O_EXCL from the
//		root package. semaphores are always opened for both wait and post.
//	perm - object's permission bits, applied if the object is created.
//	initial - the semaphore's value, if it was created by this call.
func NewSemaphore(name string, flag int, perm os.FileMode, initial uint) (*Semaphore, error) {
	result, err := newSemaphore(name, flag, perm, initial)
	if err != nil {
		return nil, err
	}
	return (*Semaphore)(result), nil
}

// Wait decrements the semaphore's value by 1, blocking until the
// value is greater than zero. Signal interruptions are retried
// internally and are never reported to the caller.
func (s *Semaphore) Wait() error {
	impl := (*semaphore)(s)
	if impl.closed() {
		return ipc.NewError(ipc.Closed, "SEM_WAIT")
	}
	return common.NewSyscallError("SEM_WAIT", impl.wait(-1))
}

// TryWait decrements the semaphore's value by 1, if the value is
// greater than zero. Otherwise it fails with a WouldBlock error
// without blocking.
func (s *Semaphore) TryWait() error {
	impl := (*semaphore)(s)
	if impl.closed() {
		return ipc.NewError(ipc.Closed, "SEM_TRYWAIT")
	}
	if !impl.tryWait() {
		return ipc.NewError(ipc.WouldBlock, "SEM_TRYWAIT")
	}
	return nil
}

// WaitTimeout behaves like Wait, but waits for not longer than
// timeout. It fails with a TimedOut error, if the timeout elapses
// with the value still at zero.
func (s *Semaphore) WaitTimeout(timeout time.Duration) error {
	impl := (*semaphore)(s)
	if impl.closed() {
		return ipc.NewError(ipc.Closed, "SEM_TIMEDWAIT")
	}
	return common.NewSyscallError("SEM_TIMEDWAIT", impl.wait(timeout))
}

// Post increments the semaphore's value by 1, waking one waiter,
// if there are any. It fails with an Overflow error, if the value
// would exceed SemValueMax.
func (s *Semaphore) Post() error {
	impl := (*semaphore)(s)
	if impl.closed() {
		return ipc.NewError(ipc.Closed, "SEM_POST")
	}
	return impl.post()
}

// Value returns the semaphore's current value, or 0, if the
// semaphore was closed. The value may be changed by other processes
// at any moment.
func (s *Semaphore) Value() int {
	impl := (*semaphore)(s)
	if impl.closed() {
		return 0
	}
	return impl.value()
}

// IsCreator reports whether the object was created by this handle.
func (s *Semaphore) IsCreator() bool {
	return (*semaphore)(s).isCreator()
}

// Close releases this process' reference to the semaphore.
// The kernel object is kept, and can be opened again by name.
// Operations on a closed semaphore fail with a Closed error.
func (s *Semaphore) Close() error {
	return (*semaphore)(s).close()
}

// Destroy closes the semaphore and unlinks its name. Handles already
// open elsewhere remain valid until they are closed.
func (s *Semaphore) Destroy() error {
	return (*semaphore)(s).destroy()
}

// DestroySemaphore unlinks the semaphore with the given name, so
// that it can no longer be opened. It fails with a NotFound error,
// if there is no such object.
func DestroySemaphore(name string) error {
	return destroySemaphore(name)
}

var (
	_ ipc.Destroyer = (*Semaphore)(nil)
)

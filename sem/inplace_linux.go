// Copyright 2016 Aleksandr Demakin. All rights reserved.

package sem

import (
	"sync/atomic"
	"time"
	"unsafe"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/common"

	"golang.org/x/sys/unix"
)

// InplaceSemaphoreSize is the size of the memory location needed
// for an inplace semaphore.
const InplaceSemaphoreSize = int(unsafe.Sizeof(semState{}))

// semState is the wire state of a semaphore, resident in memory
// shared between processes. the value word doubles as the futex word.
type semState struct {
	value    uint32
	nwaiters uint32
}

// init publishes the initial value. The backing memory must be
// zero-filled, so nwaiters is never stored here: an opener racing
// ahead of the creator may already have registered as a waiter,
// and that registration must survive.
func (s *semState) init(value uint32) {
	atomic.StoreUint32(&s.value, value)
	// an opener may have started waiting before we stored the value.
	FutexWake(unsafe.Pointer(&s.value), cFutexWakeAll)
}

func (s *semState) tryWait() bool {
	for {
		v := atomic.LoadUint32(&s.value)
		if v == 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(&s.value, v, v-1) {
			return true
		}
	}
}

// wait blocks until the value can be decremented, or the timeout
// elapses. A negative timeout means no timeout. Signal interruptions
// are retried with the remaining part of the timeout. The remaining
// time is recomputed on every futex re-issue, as a wakeup whose
// token was stolen by another waiter puts us back to sleep.
func (s *semState) wait(timeout time.Duration) error {
	if s.tryWait() {
		return nil
	}
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	atomic.AddUint32(&s.nwaiters, 1)
	defer atomic.AddUint32(&s.nwaiters, ^uint32(0))
	return common.UninterruptedSyscall(func() error {
		for {
			if s.tryWait() {
				return nil
			}
			curTimeout := time.Duration(-1)
			if timeout >= 0 {
				if curTimeout = time.Until(deadline); curTimeout < 0 {
					curTimeout = 0
				}
			}
			if err := FutexWait(unsafe.Pointer(&s.value), 0, curTimeout); err != nil {
				// EWOULDBLOCK means the value has changed between
				// our check and the wait, so we recheck it.
				if !common.SyscallErrHasCode(err, unix.EWOULDBLOCK) {
					return err
				}
			}
		}
	})
}

func (s *semState) post() error {
	for {
		v := atomic.LoadUint32(&s.value)
		if v >= SemValueMax {
			return ipc.NewError(ipc.Overflow, "SEM_POST")
		}
		if atomic.CompareAndSwapUint32(&s.value, v, v+1) {
			break
		}
	}
	if atomic.LoadUint32(&s.nwaiters) > 0 {
		if _, err := FutexWake(unsafe.Pointer(&s.value), 1); err != nil {
			return common.NewSyscallError("FUTEX_WAKE", err)
		}
	}
	return nil
}

func (s *semState) getValue() int {
	return int(atomic.LoadUint32(&s.value))
}

// InplaceSemaphore is a semaphore, which can be placed into a
// shared memory region by the caller. Unlike a named Semaphore it
// has no system-wide name, and is shared by sharing the memory it
// lives in. The memory must stay mapped for the whole lifetime of
// the object.
type InplaceSemaphore semState

// NewInplaceSemaphore creates a semaphore object on the given
// memory location. The location must hold at least
// InplaceSemaphoreSize bytes of zero-filled memory, and must reside
// in memory shared between the cooperating processes. Freshly
// created shm objects satisfy the zero-fill requirement.
// Exactly one of the processes must call Init before use.
func NewInplaceSemaphore(ptr unsafe.Pointer) *InplaceSemaphore {
	return (*InplaceSemaphore)(ptr)
}

// Init writes the initial value into the semaphore's memory location.
func (s *InplaceSemaphore) Init(value uint) error {
	if value > SemValueMax {
		return ipc.NewError(ipc.InvalidArgument, "initial semaphore value is too large")
	}
	(*semState)(s).init(uint32(value))
	return nil
}

// Wait decrements the semaphore's value by 1, blocking until the
// value is greater than zero.
func (s *InplaceSemaphore) Wait() error {
	return common.NewSyscallError("SEM_WAIT", (*semState)(s).wait(-1))
}

// TryWait decrements the semaphore's value by 1, if the value is
// greater than zero. Otherwise it fails with a WouldBlock error.
func (s *InplaceSemaphore) TryWait() error {
	if !(*semState)(s).tryWait() {
		return ipc.NewError(ipc.WouldBlock, "SEM_TRYWAIT")
	}
	return nil
}

// WaitTimeout behaves like Wait, but waits for not longer than
// timeout, failing with a TimedOut error.
func (s *InplaceSemaphore) WaitTimeout(timeout time.Duration) error {
	return common.NewSyscallError("SEM_TIMEDWAIT", (*semState)(s).wait(timeout))
}

// Post increments the semaphore's value by 1, waking one waiter,
// if there are any.
func (s *InplaceSemaphore) Post() error {
	return (*semState)(s).post()
}

// Value returns the semaphore's current value.
func (s *InplaceSemaphore) Value() int {
	return (*semState)(s).getValue()
}

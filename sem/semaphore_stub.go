// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build !linux

package sem

import (
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
)

// futex-backed semaphores need the linux futex syscall. Hosts
// without it report an Unsupported error on first use instead of
// emulating the primitive.
type semaphore struct{}

func newSemaphore(rawName string, flag int, perm os.FileMode, initial uint) (*semaphore, error) {
	return nil, errSemUnsupported()
}

func (s *semaphore) closed() bool                     { return false }
func (s *semaphore) wait(timeout time.Duration) error { return errSemUnsupported() }
func (s *semaphore) tryWait() bool                    { return false }
func (s *semaphore) post() error                      { return errSemUnsupported() }
func (s *semaphore) value() int                       { return 0 }
func (s *semaphore) isCreator() bool                  { return false }
func (s *semaphore) close() error                     { return errSemUnsupported() }
func (s *semaphore) destroy() error                   { return errSemUnsupported() }

func destroySemaphore(rawName string) error {
	return errSemUnsupported()
}

func errSemUnsupported() error {
	return ipc.NewError(ipc.Unsupported, "semaphores are not supported on this platform")
}

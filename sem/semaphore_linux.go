// Copyright 2016 Aleksandr Demakin. All rights reserved.

package sem

import (
	"os"
	"time"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/allocator"
	"github.com/nxgtw/posix-ipc/internal/helper"
	"github.com/nxgtw/posix-ipc/mmf"
	"github.com/nxgtw/posix-ipc/shm"

	"github.com/pkg/errors"
)

// semaphore is a futex-based semaphore, which keeps its state in a
// shared memory object, the same way glibc implements sem_open.
type semaphore struct {
	region  *mmf.MemoryRegion
	state   *semState
	name    ipc.Name
	created bool
}

func newSemaphore(rawName string, flag int, perm os.FileMode, initial uint) (*semaphore, error) {
	name, err := ipc.ValidateName(rawName)
	if err != nil {
		return nil, err
	}
	if initial > SemValueMax {
		return nil, ipc.NewError(ipc.InvalidArgument, "initial semaphore value is too large")
	}
	region, created, err := helper.CreateWritableRegion(semName(name), flag|ipc.O_READWRITE, perm, InplaceSemaphoreSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create semaphore state")
	}
	result := &semaphore{
		region:  region,
		state:   (*semState)(allocator.ByteSliceData(region.Data())),
		name:    name,
		created: created,
	}
	if created {
		result.state.init(uint32(initial))
	}
	return result, nil
}

func (s *semaphore) closed() bool {
	return s.state == nil
}

func (s *semaphore) wait(timeout time.Duration) error {
	return s.state.wait(timeout)
}

func (s *semaphore) tryWait() bool {
	return s.state.tryWait()
}

func (s *semaphore) post() error {
	return s.state.post()
}

func (s *semaphore) value() int {
	return s.state.getValue()
}

func (s *semaphore) isCreator() bool {
	return s.created
}

func (s *semaphore) close() error {
	if s.region == nil {
		return nil
	}
	err := s.region.Close()
	s.region = nil
	s.state = nil
	return err
}

func (s *semaphore) destroy() error {
	if err := s.close(); err != nil {
		return errors.Wrap(err, "failed to close semaphore state")
	}
	return destroySemaphore(string(s.name))
}

func destroySemaphore(rawName string) error {
	name, err := ipc.ValidateName(rawName)
	if err != nil {
		return err
	}
	return shm.DestroyMemoryObject(semName(name))
}

// semName returns the name of the shared memory object backing the
// semaphore's state.
func semName(name ipc.Name) string {
	return "/posix-ipc.sem." + name.Base()
}

// Copyright 2015 Aleksandr Demakin. All rights reserved.

package shm

import (
	"os"
	"runtime"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/mmf"
)

// MemoryObject represents an object which can be used to
// map shared memory regions into the process' address space.
// The object tracks the mapping obtained from it via Map, and
// rejects Truncate while that mapping is active. A single object
// owns at most one active mapping at a time.
// Wait-free Map/Truncate from several goroutines on the same object
// is not supported and must be serialized by the caller.
type MemoryObject struct {
	*memoryObject
}

// NewMemoryObject opens or creates a shared memory object.
//	name - a name of the object. must begin with '/' and contain
//		no further '/'s.
//	flag - combination of open flags from the root package, e.g.
//		O_CREATE|O_EXCL|O_READWRITE.
//	perm - object's permission bits. applied by the kernel together
//		with the process umask, if the object is created.
func NewMemoryObject(name string, flag int, perm os.FileMode) (*MemoryObject, error) {
	impl, _, err := newMemoryObject(name, flag, perm)
	if err != nil {
		return nil, err
	}
	result := &MemoryObject{impl}
	runtime.SetFinalizer(impl, func(memObject *memoryObject) {
		memObject.Close()
	})
	return result, nil
}

// NewMemoryObjectSize opens or creates a shared memory object.
// If the object was created, it is truncated to the given size,
// which must be positive. Existing objects keep their size.
// It returns the object along with a flag, whether it was created
// by this call.
func NewMemoryObjectSize(name string, flag int, perm os.FileMode, size int64) (*MemoryObject, bool, error) {
	if flag&ipc.O_CREATE != 0 && size <= 0 {
		return nil, false, ipc.NewError(ipc.InvalidArgument, "object size must be positive")
	}
	impl, created, err := newMemoryObject(name, flag, perm)
	if err != nil {
		return nil, false, err
	}
	if created {
		if err = impl.Truncate(size); err != nil {
			impl.Close()
			impl.destroy()
			return nil, false, err
		}
	}
	result := &MemoryObject{impl}
	runtime.SetFinalizer(impl, func(memObject *memoryObject) {
		memObject.Close()
	})
	return result, created, nil
}

// Map establishes a mapped region over the object.
//	offset - offset in bytes from the beginning of the object.
//	size - mapping size. must be positive, or mmf.WholeObject.
//	mode - one of the MEM_* constants of the root package.
// The region must be released with Unmap, or by Close, before the
// object can be truncated or mapped again.
func (obj *MemoryObject) Map(offset int64, size int, mode int) (*mmf.MemoryRegion, error) {
	return obj.memoryObject.doMap(offset, size, mode)
}

// Unmap releases the region previously obtained from Map.
func (obj *MemoryObject) Unmap() error {
	return obj.memoryObject.unmap()
}

// Destroy closes the object and unlinks its name, so that it cannot
// be opened anymore. Handles already open elsewhere remain valid
// until they are closed.
func (obj *MemoryObject) Destroy() error {
	return obj.memoryObject.destroy()
}

// DestroyMemoryObject unlinks the object with the given name.
// It fails with a NotFound error, if there is no such object.
func DestroyMemoryObject(name string) error {
	return destroyMemoryObject(name)
}

// Copyright 2015 Aleksandr Demakin. All rights reserved.

package mmf

import (
	"os"
	"runtime"
	"unsafe"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/internal/allocator"
)

// WholeObject can be passed as the mapping size to map the entire
// object starting at the given offset.
const WholeObject = -1

var mmapOffsetMultiple int64

// Mappable is a named object, which can return a handle,
// that can be used as a file descriptor for mmap.
type Mappable interface {
	Fd() uintptr
	Name() string
}

// MemoryRegion is a mmapped area of a memory object.
// Warning. The internal object has a finalizer set,
// so the region will be unmapped during the gc.
// Thus, you should be carefull getting internal data.
// For example, the following code may crash:
// 	func f() []byte {
// 		region := NewMemoryRegion(...)
// 		return g(region.Data())
// 	}
// region may be gc'ed while its data is used by g().
// To avoid this, you can use UseMemoryRegion() or region readers/writers.
type MemoryRegion struct {
	*memoryRegion
}

// NewMemoryRegion creates a new mapped region.
// 	object - an object to mmap.
// 	mode - open mode. see MEM_* constants in the root package.
// 	offset - offset in bytes from the beginning of the object.
// 	size - mapping size. must be positive, or WholeObject.
func NewMemoryRegion(object Mappable, mode int, offset int64, size int) (*MemoryRegion, error) {
	impl, err := newMemoryRegion(object, mode, offset, size)
	if err != nil {
		return nil, err
	}
	result := &MemoryRegion{impl}
	runtime.SetFinalizer(impl, func(region *memoryRegion) {
		region.Close()
	})
	return result, nil
}

// Close unmaps the region so that it can no longer be used.
func (region *MemoryRegion) Close() error {
	return region.memoryRegion.Close()
}

// Data returns region's mapped data.
func (region *MemoryRegion) Data() []byte {
	return region.memoryRegion.Data()
}

// Flush syncs mapped content with the object data.
func (region *MemoryRegion) Flush(async bool) error {
	return region.memoryRegion.Flush(async)
}

// Size returns mapping size.
func (region *MemoryRegion) Size() int {
	return region.memoryRegion.Size()
}

// UseMemoryRegion ensures, that the region is still alive at the
// moment of the call, so that its mapped data can not go away.
func UseMemoryRegion(region *MemoryRegion) {
	allocator.Use(unsafe.Pointer(region))
}

// calcMmapOffsetFixup returns a value X,
// so that offset - X is a valid mmap offset,
// which must be a multiple of the page size.
func calcMmapOffsetFixup(offset int64) int64 {
	return offset - (offset/mmapOffsetMultiple)*mmapOffsetMultiple
}

// fileInfoGetter is used to obtain an object's size.
type fileInfoGetter interface {
	Stat() (os.FileInfo, error)
}

// fileSizeFromFd returns the object's size. known is false, if the
// object cannot report it.
func fileSizeFromFd(f Mappable) (size int64, known bool, err error) {
	if f.Fd() == ^uintptr(0) {
		return 0, false, nil
	}
	ig, ok := f.(fileInfoGetter)
	if !ok {
		return 0, false, nil
	}
	fi, err := ig.Stat()
	if err != nil {
		return 0, false, err
	}
	return fi.Size(), true, nil
}

func checkMmapSize(f Mappable, size int) (int, error) {
	if size == WholeObject {
		sz, known, err := fileSizeFromFd(f)
		if err != nil {
			return 0, err
		}
		if !known || sz == 0 {
			return 0, ipc.NewError(ipc.InvalidArgument, "unable to obtain a valid object size")
		}
		return int(sz), nil
	}
	if size <= 0 {
		return 0, ipc.NewError(ipc.InvalidArgument, "mapping size must be positive")
	}
	return size, nil
}

// Copyright 2016 Aleksandr Demakin. All rights reserved.

package helper

import (
	"os"

	ipc "github.com/nxgtw/posix-ipc"
	"github.com/nxgtw/posix-ipc/mmf"
	"github.com/nxgtw/posix-ipc/shm"

	"github.com/pkg/errors"
)

// CreateWritableRegion is a helper, which:
//	- opens or creates a shared memory object with the given parameters.
//	- maps the entire object with the MEM_READWRITE flag.
//	- closes the memory object and returns the mapped region along
//	  with a flag, whether the object was created.
// On failure no descriptor, mapping, or newly created object is left
// behind.
func CreateWritableRegion(name string, flag int, perm os.FileMode, size int) (*mmf.MemoryRegion, bool, error) {
	obj, created, resultErr := shm.NewMemoryObjectSize(name, flag, perm, int64(size))
	if resultErr != nil {
		return nil, false, errors.Wrap(resultErr, "failed to create shm object")
	}
	var region *mmf.MemoryRegion
	defer func() {
		obj.Close()
		if resultErr == nil {
			return
		}
		if region != nil {
			region.Close()
		}
		if created {
			obj.Destroy()
		}
	}()
	if region, resultErr = mmf.NewMemoryRegion(obj, ipc.MEM_READWRITE, 0, size); resultErr != nil {
		return nil, false, errors.Wrap(resultErr, "failed to create shm region")
	}
	return region, created, nil
}

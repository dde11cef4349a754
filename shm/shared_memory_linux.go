// Copyright 2015 Aleksandr Demakin. All rights reserved.

// +build linux

package shm

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	ipc "github.com/nxgtw/posix-ipc"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	defaultShmPath   = "/dev/shm/"
	cShmfsSuperMagic = 0x01021994
	cRamfsMagic      = 0x858458f6
)

var (
	shmPathOnce sync.Once
	shmDir      string
)

// shmPath returns the filesystem path backing the object name.
// glibc/sysdeps/posix/shm-directory.h
func shmPath(name ipc.Name) (string, error) {
	dir, err := shmDirectory()
	if err != nil {
		return "", errors.Wrap(err, "error building shared memory path")
	}
	return dir + name.Base(), nil
}

func shmDirectory() (string, error) {
	shmPathOnce.Do(locateShmFs)
	if len(shmDir) == 0 {
		return "", ipc.NewError(ipc.Unsupported, "no shared memory filesystem is mounted")
	}
	return shmDir, nil
}

// glibc/sysdeps/unix/sysv/linux/shm-directory.c
func locateShmFs() {
	if checkShmPath(defaultShmPath) {
		shmDir = defaultShmPath
	} else {
		shmDir = shmFsFromMounts()
	}
}

func checkShmPath(path string) bool {
	if len(path) == 0 {
		return false
	}
	var statfs unix.Statfs_t
	if err := unix.Statfs(path, &statfs); err != nil {
		return false
	}
	return isShmFs(int64(statfs.Type))
}

func isShmFs(fsType int64) bool {
	return fsType == cShmfsSuperMagic || fsType == cRamfsMagic
}

func shmFsFromMounts() string {
	fsFile, err := os.Open("/proc/mounts")
	if err != nil {
		if fsFile, err = os.Open("/etc/fstab"); err != nil {
			return ""
		}
	}
	defer fsFile.Close()
	return shmFsFromReader(fsFile)
}

func shmFsFromReader(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		dir, fsType, ok := scanMountRecord(scanner.Text())
		if !ok || (fsType != "tmpfs" && fsType != "shm") {
			continue
		}
		if checkShmPath(dir) {
			if !strings.HasSuffix(dir, "/") {
				dir = dir + "/"
			}
			return dir
		}
	}
	return ""
}

// scanMountRecord parses a single fstab-format record, returning
// the mount point and the filesystem type.
func scanMountRecord(record string) (dir, fsType string, ok bool) {
	fields := strings.Fields(record)
	if len(fields) < 4 || strings.HasPrefix(fields[0], "#") {
		return "", "", false
	}
	return fields[1], fields[2], true
}

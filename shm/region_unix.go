// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package shm

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Region is a named POSIX shared-memory mapping backed by tmpfs. The
// zero value is not usable; obtain one via Create or Open.
//
// Region is a move-only value in spirit: construction acquires the
// mapping, Close releases this process's view of it, and Destroy
// additionally unlinks the name. Copying a Region and closing both
// copies double-unmaps; callers must treat it like a file handle.
type Region struct {
	fd   int
	data []byte
	name string
	size int
}

// shmDir is where this package's shared-memory objects live. Linux
// has no shm_open syscall; glibc's implementation is itself just
// open() against a tmpfs mount, which is what we do directly.
const shmDir = "/dev/shm"

func normalizeName(name string) string {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return name
}

func shmPath(name string) string {
	return filepath.Join(shmDir, strings.TrimPrefix(name, "/"))
}

// Create opens name with create-and-truncate semantics, sizes it to
// size bytes, and maps it read/write shared. Fails with [*Error] if
// the object already exists.
func Create(name string, size int) (*Region, error) {
	n := normalizeName(name)
	fd, err := unix.Open(shmPath(n), unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, 0600)
	if err != nil {
		return nil, newError("create", n, err)
	}
	return finishOpen(n, fd, size, true)
}

// Open maps an existing named region of size bytes. Fails with
// [*Error] (wrapping ENOENT) if the object has not been created yet —
// callers that start before the creator should retry.
func Open(name string, size int) (*Region, error) {
	n := normalizeName(name)
	fd, err := unix.Open(shmPath(n), unix.O_RDWR, 0)
	if err != nil {
		return nil, newError("open", n, err)
	}
	return finishOpen(n, fd, size, false)
}

func finishOpen(name string, fd int, size int, truncate bool) (*Region, error) {
	if truncate {
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			unix.Close(fd)
			return nil, newError("truncate", name, err)
		}
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, newError("map", name, err)
	}
	return &Region{fd: fd, data: data, name: name, size: size}, nil
}

// Data returns the mapped bytes. The caller places a queue's layout
// directly into this slice.
func (r *Region) Data() []byte {
	return r.data
}

// Close unmaps the region and closes the local descriptor. It does
// not remove the name; other processes may still have it mapped.
func (r *Region) Close() error {
	unmapErr := unix.Munmap(r.data)
	closeErr := unix.Close(r.fd)
	if unmapErr != nil {
		return newError("unmap", r.name, unmapErr)
	}
	return newError("close", r.name, closeErr)
}

// Destroy closes the region and unlinks its name. Unlinking a name
// that another process still has mapped is permitted: the backing
// object survives until the last mapping is released by the kernel.
func (r *Region) Destroy() error {
	if err := r.Close(); err != nil {
		return err
	}
	if err := unix.Unlink(shmPath(r.name)); err != nil {
		return newError("unlink", r.name, err)
	}
	return nil
}

// Exists reports whether a shared-memory object of the given name
// currently exists, without mapping it.
func Exists(name string) bool {
	err := unix.Stat(shmPath(normalizeName(name)), &unix.Stat_t{})
	return err == nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package shm

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Region is a named Win32 file-mapping object backed by the system
// paging file. The zero value is not usable; obtain one via Create
// or Open.
type Region struct {
	mapping windows.Handle
	addr    uintptr
	data    []byte
	name    string
	size    int
}

// normalizeName passes the name through unchanged: Windows object
// names have no required prefix.
func normalizeName(name string) string {
	return name
}

// Create creates a named file mapping of size bytes backed by the
// system paging file and maps it into this process. Unlike the POSIX
// path, Win32 file mapping has no atomic create-exclusive primitive:
// if an object of this name already exists, CreateFileMapping attaches
// to it rather than failing, so a racing creator and a racing opener
// both succeed.
func Create(name string, size int) (*Region, error) {
	n := normalizeName(name)
	namePtr, err := windows.UTF16PtrFromString(n)
	if err != nil {
		return nil, newError("create", n, err)
	}
	high := uint32(uint64(size) >> 32)
	low := uint32(uint64(size) & 0xffffffff)
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, high, low, namePtr)
	if err != nil {
		return nil, newError("create", n, err)
	}
	return finishMap(n, h, size)
}

// Open maps an existing named file mapping of size bytes. Fails with
// [*Error] if the object has not been created yet — callers that
// start before the creator should retry.
func Open(name string, size int) (*Region, error) {
	n := normalizeName(name)
	namePtr, err := windows.UTF16PtrFromString(n)
	if err != nil {
		return nil, newError("open", n, err)
	}
	h, err := windows.OpenFileMapping(windows.FILE_MAP_ALL_ACCESS, false, namePtr)
	if err != nil {
		return nil, newError("open", n, err)
	}
	return finishMap(n, h, size)
}

func finishMap(name string, h windows.Handle, size int) (*Region, error) {
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_ALL_ACCESS, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, newError("map", name, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &Region{mapping: h, addr: addr, data: data, name: name, size: size}, nil
}

// Data returns the mapped bytes. The caller places a queue's layout
// directly into this slice.
func (r *Region) Data() []byte {
	return r.data
}

// Close unmaps the region and closes the local handle.
func (r *Region) Close() error {
	if err := windows.UnmapViewOfFile(r.addr); err != nil {
		return newError("unmap", r.name, err)
	}
	return newError("close", r.name, windows.CloseHandle(r.mapping))
}

// Destroy closes the region. Win32 file-mapping objects have no
// separate unlink step: the kernel object is reference-counted and
// vanishes once every handle (in every process) is closed.
func (r *Region) Destroy() error {
	return r.Close()
}

// Exists reports whether a file mapping of the given name currently
// exists, without mapping it.
func Exists(name string) bool {
	namePtr, err := windows.UTF16PtrFromString(normalizeName(name))
	if err != nil {
		return false
	}
	h, err := windows.OpenFileMapping(windows.FILE_MAP_ALL_ACCESS, false, namePtr)
	if err != nil {
		return false
	}
	windows.CloseHandle(h)
	return true
}

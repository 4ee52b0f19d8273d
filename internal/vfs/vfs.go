// Package vfs provides the minimal filesystem seam the sst package
// builds and reads through. This lets tests substitute an in-memory
// filesystem for the real OS without touching the sst package itself.
package vfs

import (
	"io"
	"os"
)

// FS is the filesystem interface the sst package depends on.
type FS interface {
	// Create creates a new writable file, truncating it if it exists.
	Create(name string) (WritableFile, error)

	// OpenRandomAccess opens an existing file for random-access reads.
	OpenRandomAccess(name string) (RandomAccessFile, error)

	// Remove deletes a file.
	Remove(name string) error
}

// WritableFile is a file an SST builder writes its sealed bytes to.
type WritableFile interface {
	io.Writer
	io.Closer
}

// RandomAccessFile is a file an SST reads block ranges from. Multiple
// goroutines may call ReadAt concurrently.
type RandomAccessFile interface {
	io.ReaderAt
	io.Closer

	// Size returns the total size of the file.
	Size() int64
}

// osFS implements FS over the real operating system filesystem.
type osFS struct{}

// Default returns the OS-backed filesystem.
func Default() FS {
	return osFS{}
}

func (osFS) Create(name string) (WritableFile, error) {
	return os.Create(name)
}

func (osFS) OpenRandomAccess(name string) (RandomAccessFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &osRandomAccessFile{f: f, size: info.Size()}, nil
}

func (osFS) Remove(name string) error {
	return os.Remove(name)
}

type osRandomAccessFile struct {
	f    *os.File
	size int64
}

func (r *osRandomAccessFile) ReadAt(p []byte, off int64) (int, error) {
	return r.f.ReadAt(p, off)
}

func (r *osRandomAccessFile) Close() error {
	return r.f.Close()
}

func (r *osRandomAccessFile) Size() int64 {
	return r.size
}

package store

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// DirLock is an exclusive flock over a data directory. It keeps a second
// daygrid process from opening the same store; the diskv backend has no
// locking of its own.
type DirLock struct {
	path string
	file *os.File
}

// LockDir takes the lock at dir/daygrid.lock, polling until timeout when
// another process holds it. A timeout of zero blocks indefinitely.
func LockDir(dir string, timeout time.Duration) (*DirLock, error) {
	path := filepath.Join(dir, "daygrid.lock")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
			_ = file.Close()
			return nil, err
		}
		return &DirLock{path: path, file: file}, nil
	}
	deadline := time.Now().Add(timeout)
	for {
		err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return &DirLock{path: path, file: file}, nil
		}
		if err != syscall.EWOULDBLOCK && err != syscall.EAGAIN {
			_ = file.Close()
			return nil, err
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, os.ErrDeadlineExceeded
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (l *DirLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

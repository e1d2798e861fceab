package seenstore

import (
	"errors"

	"github.com/gofrs/flock"
)

// ErrLocked means another run currently holds the store lock. Two
// overlapping cycles mutating the same store is the one condition this
// design must prevent, so the holder wins and the newcomer aborts.
var ErrLocked = errors.New("seen store is locked by another run")

type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the advisory lock at path without blocking.
func AcquireLock(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{fl: fl}, nil
}

func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

package lock

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// SharedLock is a reader/writer lock shared by every rule of one
// stylesheet tree. Many readers may hold read guards concurrently; a
// write guard is exclusive and blocks all readers for its duration.
//
// Acquisition is synchronous and blocking. There is no suspension point,
// no cancellation and no timeout; callers that want to abandon work do so
// at the granularity of a whole stylesheet, outside of this package.
type SharedLock struct {
	mu sync.RWMutex
	id uint64 // process-unique, for assertion messages
}

var lockSerial uint64

// NewSharedLock creates a fresh lock, not associated with any guard yet.
func NewSharedLock() *SharedLock {
	l := &SharedLock{id: atomic.AddUint64(&lockSerial, 1)}
	tracer().Debugf("new shared lock #%d", l.id)
	return l
}

// Read blocks until shared read access is granted and returns a guard
// token as proof. The caller is responsible for releasing the guard.
func (l *SharedLock) Read() *ReadGuard {
	l.mu.RLock()
	return &ReadGuard{owner: l}
}

// Write blocks until exclusive access is granted and returns a guard
// token as proof. The caller is responsible for releasing the guard.
func (l *SharedLock) Write() *WriteGuard {
	l.mu.Lock()
	return &WriteGuard{owner: l}
}

// ReadGuard is a capability token proving that its owner lock is held for
// reading. Guards are passed explicitly into every operation on protected
// content; they are never acquired implicitly inside a call.
type ReadGuard struct {
	owner    *SharedLock
	released bool
}

// Release gives up read access. Releasing a guard twice is a programmer
// error and panics.
func (g *ReadGuard) Release() {
	if g.released {
		panic("lock: read guard released twice")
	}
	g.released = true
	g.owner.mu.RUnlock()
}

// WriteGuard is a capability token proving that its owner lock is held
// exclusively.
type WriteGuard struct {
	owner    *SharedLock
	released bool
}

// Release gives up exclusive access. Releasing a guard twice is a
// programmer error and panics.
func (g *WriteGuard) Release() {
	if g.released {
		panic("lock: write guard released twice")
	}
	g.released = true
	g.owner.mu.Unlock()
}

// Locked is a value paired with the identity of the lock that protects
// it. The value is only reachable through a guard issued by that very
// lock; a guard from a different lock instance panics.
type Locked[T any] struct {
	owner *SharedLock
	value T
}

// Wrap associates a value with a lock. Wrapping needs no guard: the cell
// is not shared before the caller publishes it.
func Wrap[T any](l *SharedLock, v T) *Locked[T] {
	if l == nil {
		panic("lock: cannot wrap value without a lock")
	}
	return &Locked[T]{owner: l, value: v}
}

// Read returns the protected value for reading. The guard must originate
// from the lock this cell was wrapped with and must not have been
// released. Callers must not mutate the result.
func (cell *Locked[T]) Read(g *ReadGuard) *T {
	if g == nil || g.released {
		panic("lock: access with released or nil read guard")
	}
	if g.owner != cell.owner {
		panic(fmt.Sprintf("lock: read guard of lock #%d used on value of lock #%d",
			g.owner.id, cell.owner.id))
	}
	return &cell.value
}

// Write returns the protected value for mutation. The guard must
// originate from the lock this cell was wrapped with and must not have
// been released.
func (cell *Locked[T]) Write(g *WriteGuard) *T {
	if g == nil || g.released {
		panic("lock: access with released or nil write guard")
	}
	if g.owner != cell.owner {
		panic(fmt.Sprintf("lock: write guard of lock #%d used on value of lock #%d",
			g.owner.id, cell.owner.id))
	}
	return &cell.value
}

// ProtectedBy tells if this cell is guarded by the given lock. Used by
// clients to verify lock isolation after cloning a tree.
func (cell *Locked[T]) ProtectedBy(l *SharedLock) bool {
	return cell.owner == l
}

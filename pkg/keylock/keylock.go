// Package keylock serialises work per key inside one process.
package keylock

import (
	"hash/fnv"
	"sync"
)

const stripes = 64

// Striped maps keys onto a fixed set of mutexes. Distinct keys may share a
// stripe; the same key always gets the same one. The zero value is ready.
type Striped struct {
	mu [stripes]sync.Mutex
}

// Lock locks key's stripe and returns the matching unlock.
func (s *Striped) Lock(key string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &s.mu[h.Sum32()%stripes]
	m.Lock()
	return m.Unlock
}

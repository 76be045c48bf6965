package service

import "sync"

// keyedMutex serializes the check-then-act sequences of the booking
// lifecycle per car id. The database transaction alone does not stop two
// concurrent requests from both passing the availability check before
// either inserts, so the whole sequence runs under the car's lock.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int32]*sync.Mutex)}
}

func (k *keyedMutex) get(key int32) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *keyedMutex) Lock(key int32) {
	k.get(key).Lock()
}

func (k *keyedMutex) Unlock(key int32) {
	k.get(key).Unlock()
}

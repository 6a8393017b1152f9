package allocation

import "sync"

// engineerLocks hands out one mutex per engineer ID. The capacity check and
// the store write are not atomic, so each engineer's mutations must be
// serialized; operations on different engineers proceed concurrently.
type engineerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEngineerLocks() *engineerLocks {
	return &engineerLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *engineerLocks) forEngineer(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}

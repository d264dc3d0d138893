package idempotency

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// KeyManager hands out request ids for execution submissions and remembers
// the most recent one so it can be replayed on purpose.
type KeyManager struct {
	mu   sync.Mutex
	last string
	seq  atomic.Uint64
	now  func() time.Time
}

func NewKeyManager() *KeyManager {
	return &KeyManager{now: time.Now}
}

// Generate returns a fresh key of the form ord-<unix-nanos>-<seq>-<uuid>.
// The time and sequence parts keep keys ordered within a process; the uuid
// makes collisions across processes practically impossible.
func (k *KeyManager) Generate() string {
	now := time.Now
	if k.now != nil {
		now = k.now
	}
	seq := k.seq.Add(1)
	id := fmt.Sprintf("ord-%d-%d-%s", now().UnixNano(), seq, uuid.NewString())

	k.mu.Lock()
	k.last = id
	k.mu.Unlock()

	return id
}

// Last returns the most recently generated key, if any.
func (k *KeyManager) Last() (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.last, k.last != ""
}

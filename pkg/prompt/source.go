// pkg/prompt/source.go

package prompt

import (
	"sync"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/rawkey"
)

// keySource remembers the first failed key read since the last reset. A
// failed read means the input is closed and no later answer can differ.
type keySource struct {
	rawkey.KeyReader

	mu    sync.Mutex
	cause error
}

func (k *keySource) ReadKey() (byte, error) {
	b, err := k.KeyReader.ReadKey()
	if err != nil {
		k.mu.Lock()
		if k.cause == nil {
			k.cause = err
		}
		k.mu.Unlock()
	}
	return b, err
}

func (k *keySource) ended() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.cause
}

func (k *keySource) reset() {
	k.mu.Lock()
	k.cause = nil
	k.mu.Unlock()
}

package random

import (
	"sync"
)

// keygenMu serializes entropy incorporation for key generation. It is
// independent of every Generator's draw lock.
var keygenMu sync.Mutex

// Pool is a locally owned generator that never reads the operating system.
// It produces output only after entropy has been incorporated.
type Pool struct {
	g *Generator
}

func NewPool() *Pool {
	return &Pool{g: &Generator{}}
}

// IncorporateEntropy mixes seed into the pool state.
func (p *Pool) IncorporateEntropy(seed []byte) {
	if len(seed) == 0 {
		return
	}
	keygenMu.Lock()
	defer keygenMu.Unlock()

	p.g.mu.Lock()
	defer p.g.mu.Unlock()
	p.g.mix(seed)
}

func (p *Pool) Read(b []byte) (int, error) {
	return p.g.Read(b)
}

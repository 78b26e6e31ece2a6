package record

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces record ids. Every id must be exactly IDWidth bytes.
// Implemented by UUIDv7Generator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 ids.
//
// Format: "01890a5d-ac96-774b-bcce-b302099a8057" (36 characters)
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns a fresh UUIDv7. Panics only if the system entropy source fails.
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predictable ids for tests and golden transcripts:
//
//	00000000-0000-0000-0000-000000000001
//	00000000-0000-0000-0000-000000000002
//	...
type SequenceGenerator struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceGenerator starts a sequence whose first id ends in 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return SequenceID(g.next)
}

// SequenceID formats n the way SequenceGenerator does.
func SequenceID(n int64) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}

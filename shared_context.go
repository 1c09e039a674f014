// shared_context.go - Shared, exclusive-access handle to the hardware context

package main

import (
	"fmt"
	"sync"
)

// SharedContext gives every registered script operation a cheap handle to
// the one HardwareContext with run-time-enforced exclusive access. A
// panic inside an operation poisons the handle: the remainder of the
// process deterministically fails every subsequent acquisition, matching
// the unrecoverable-shared-state contract scripts observe.
type SharedContext struct {
	mu       sync.Mutex
	ctx      *HardwareContext
	poisoned bool
	cause    string
}

func NewSharedContext(ctx *HardwareContext) *SharedContext {
	return &SharedContext{ctx: ctx}
}

// Do runs fn with exclusive access to the context. Exactly one
// acquisition, one call, one release per invocation.
func (s *SharedContext) Do(op string, fn func(*HardwareContext) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		return &ContextError{
			Kind:      ErrAccess,
			Operation: op,
			Details:   fmt.Sprintf("shared context poisoned by earlier panic: %s", s.cause),
		}
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			s.cause = fmt.Sprint(r)
			err = &ContextError{
				Kind:      ErrAccess,
				Operation: op,
				Details:   fmt.Sprintf("shared context poisoned by panic: %s", s.cause),
			}
		}
	}()
	return fn(s.ctx)
}

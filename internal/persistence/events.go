package persistence

import (
	"sync"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
)

// AuthListener receives the signed-in principal, or nil after sign-out.
type AuthListener func(p *models.Principal)

// AuthEvents is a registry of auth-state listeners. Listeners are called
// synchronously in registration order.
type AuthEvents struct {
	mu        sync.Mutex
	nextID    int
	order     []int
	listeners map[int]AuthListener
	current   *models.Principal
}

func NewAuthEvents() *AuthEvents {
	return &AuthEvents{listeners: map[int]AuthListener{}}
}

// Subscribe registers fn and immediately delivers the current state to it.
// The returned func removes the listener; calling it twice is harmless.
func (e *AuthEvents) Subscribe(fn AuthListener) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.order = append(e.order, id)
	current := clonePrincipal(e.current)
	e.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { e.remove(id) })
	}
}

func (e *AuthEvents) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Publish records p as the current state and notifies every listener.
func (e *AuthEvents) Publish(p *models.Principal) {
	e.mu.Lock()
	e.current = clonePrincipal(p)
	fns := make([]AuthListener, 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.listeners[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(clonePrincipal(p))
	}
}

func clonePrincipal(p *models.Principal) *models.Principal {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

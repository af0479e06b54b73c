package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"
)

type entry struct {
	ctl      *Controller
	lastSeen time.Time
}

// Registry keeps live sessions by id and forgets the ones left idle longer
// than TTL.
type Registry struct {
	planner Planner
	store   Store
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(planner Planner, store Store, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Registry{
		planner:  planner,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// Create starts a new session on the landing view.
func (r *Registry) Create() *Controller {
	ctl := NewController(r.planner, r.store)

	r.mu.Lock()
	r.sessions[ctl.ID] = &entry{ctl: ctl, lastSeen: r.now()}
	r.mu.Unlock()
	return ctl
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.ctl, true
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				utils.LogEvent("", "session", "sweep", fmt.Sprintf("evicted=%d live=%d", n, r.Len()))
			}
		}
	}
}

// WaitSaves joins pending auto-saves of every live session.
func (r *Registry) WaitSaves() {
	r.mu.Lock()
	ctls := make([]*Controller, 0, len(r.sessions))
	for _, e := range r.sessions {
		ctls = append(ctls, e.ctl)
	}
	r.mu.Unlock()

	for _, c := range ctls {
		c.WaitSaves()
	}
}

package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iw2rmb/smedit/engine"
)

var (
	ErrUnknownSession = errors.New("session: unknown session")
	ErrSessionExists  = errors.New("session: id already open")
)

// Registry is a thread-safe set of open sessions sharing one engine.
type Registry struct {
	mu       sync.Mutex
	eng      engine.Engine
	opt      Options
	sessions map[string]*Session
}

func NewRegistry(e engine.Engine, opt Options) *Registry {
	return &Registry{
		eng:      e,
		opt:      opt,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session for id. It fails with ErrSessionExists when id is
// already open.
func (r *Registry) Open(id, text string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		return nil, fmt.Errorf("open %q: %w", id, ErrSessionExists)
	}
	s := New(id, text, r.eng, r.opt)
	r.sessions[id] = s
	return s, nil
}

// Get returns the open session for id, or ErrUnknownSession.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, ErrUnknownSession)
	}
	return s, nil
}

// Close forgets the session for id, or fails with ErrUnknownSession.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("close %q: %w", id, ErrUnknownSession)
	}
	delete(r.sessions, id)
	return nil
}

// IDs returns the open session ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

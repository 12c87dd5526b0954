package session

import (
	"atlas-maple2/metrics"
	"sync"

	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
)

type registryKey struct {
	tenant      tenant.Model
	characterId uint32
}

type Registry struct {
	lock     sync.RWMutex
	sessions map[registryKey]*Model
}

var registry *Registry
var once sync.Once

func GetRegistry() *Registry {
	once.Do(func() {
		registry = &Registry{
			sessions: make(map[registryKey]*Model),
		}
	})
	return registry
}

// Add registers m unless its character already has a session. The session
// holding the key is returned together with whether m was added.
func (r *Registry) Add(m *Model) (*Model, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	k := registryKey{tenant: m.Tenant(), characterId: m.CharacterId()}
	if existing, ok := r.sessions[k]; ok {
		return existing, false
	}
	r.sessions[k] = m
	metrics.SetSessionsActive(len(r.sessions))
	return m, true
}

func (r *Registry) Get(t tenant.Model, characterId uint32) (*Model, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	m, ok := r.sessions[registryKey{tenant: t, characterId: characterId}]
	return m, ok
}

func (r *Registry) Remove(t tenant.Model, characterId uint32) (*Model, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	k := registryKey{tenant: t, characterId: characterId}
	m, ok := r.sessions[k]
	if !ok {
		return nil, false
	}
	delete(r.sessions, k)
	metrics.SetSessionsActive(len(r.sessions))
	return m, true
}

// RemoveIf removes the session of the character only while it is sessionId.
// The registered session, if any, is returned together with whether it was removed.
func (r *Registry) RemoveIf(t tenant.Model, characterId uint32, sessionId uuid.UUID) (*Model, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	k := registryKey{tenant: t, characterId: characterId}
	m, ok := r.sessions[k]
	if !ok || m.Id() != sessionId {
		return m, false
	}
	delete(r.sessions, k)
	metrics.SetSessionsActive(len(r.sessions))
	return m, true
}

func (r *Registry) GetAll() []*Model {
	r.lock.RLock()
	defer r.lock.RUnlock()
	results := make([]*Model, 0, len(r.sessions))
	for _, m := range r.sessions {
		results = append(results, m)
	}
	return results
}

package store

import (
	"sync"

	"ludo-server/internal/room"
)

// MemoryStore keeps the room and session indices in memory. The two maps
// have separate locks so session lookups never wait on room inserts.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room

	sessionsMu sync.RWMutex
	sessions   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    map[string]*room.Room{},
		sessions: map[string]string{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) InsertRoom(r *room.Room) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.rooms[r.Code]; taken {
		return false
	}
	m.rooms[r.Code] = r
	return true
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func (m *MemoryStore) Rooms() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func (m *MemoryStore) BindSession(sessionID, code string) bool {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()
	if _, bound := m.sessions[sessionID]; bound {
		return false
	}
	m.sessions[sessionID] = code
	return true
}

func (m *MemoryStore) SessionRoom(sessionID string) (string, bool) {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	code, ok := m.sessions[sessionID]
	return code, ok
}

func (m *MemoryStore) ReleaseSession(sessionID string) {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()
	delete(m.sessions, sessionID)
}

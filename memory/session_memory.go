package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const DefaultMaxExchanges = 2

type exchange struct {
	Query  string
	Answer string
}

// SessionMemory keeps a bounded rolling transcript per session. Only the
// newest maxExchanges question-answer pairs survive, so prompt size stays
// constant no matter how long a session runs.
type SessionMemory struct {
	mu           sync.Mutex
	sessions     *cache.Cache
	maxExchanges int
}

func ProvideSessionMemory(maxExchanges int) *SessionMemory {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &SessionMemory{
		sessions:     cache.New(cache.NoExpiration, 0),
		maxExchanges: maxExchanges,
	}
}

func NewSessionID() string {
	return uuid.NewString()
}

// History returns the session transcript formatted for prompt injection, or
// an empty string for an unknown session.
func (m *SessionMemory) History(sessionID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	exchanges := m.load(sessionID)
	if len(exchanges) == 0 {
		return ""
	}

	lines := make([]string, 0, len(exchanges)*2)
	for _, e := range exchanges {
		lines = append(lines, fmt.Sprintf("User: %s", e.Query))
		lines = append(lines, fmt.Sprintf("Assistant: %s", e.Answer))
	}
	return strings.Join(lines, "\n")
}

// Append records one completed exchange and evicts the oldest entries beyond
// the retention window.
func (m *SessionMemory) Append(sessionID, query, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exchanges := append(m.load(sessionID), exchange{Query: query, Answer: answer})
	if len(exchanges) > m.maxExchanges {
		exchanges = exchanges[len(exchanges)-m.maxExchanges:]
	}
	m.sessions.Set(sessionID, exchanges, cache.NoExpiration)
}

func (m *SessionMemory) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions.Delete(sessionID)
}

func (m *SessionMemory) load(sessionID string) []exchange {
	if v, ok := m.sessions.Get(sessionID); ok {
		return v.([]exchange)
	}
	return nil
}

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionMemory_History(t *testing.T) {
	mem := ProvideSessionMemory(2)
	sessionID := NewSessionID()

	assert.Empty(t, mem.History(sessionID), "fresh session has no history")

	mem.Append(sessionID, "What is RAG?", "Retrieval augmented generation.")

	assert.Equal(t,
		"User: What is RAG?\nAssistant: Retrieval augmented generation.",
		mem.History(sessionID))
}

func TestSessionMemory_BoundedRetention(t *testing.T) {
	mem := ProvideSessionMemory(2)
	sessionID := NewSessionID()

	mem.Append(sessionID, "q1", "a1")
	mem.Append(sessionID, "q2", "a2")
	mem.Append(sessionID, "q3", "a3")

	history := mem.History(sessionID)

	// Only the newest two exchanges survive.
	assert.NotContains(t, history, "q1")
	assert.Equal(t, "User: q2\nAssistant: a2\nUser: q3\nAssistant: a3", history)
}

func TestSessionMemory_SessionsIsolated(t *testing.T) {
	mem := ProvideSessionMemory(2)
	first := NewSessionID()
	second := NewSessionID()

	mem.Append(first, "q1", "a1")

	assert.Empty(t, mem.History(second))
	assert.NotEmpty(t, mem.History(first))
}

func TestSessionMemory_Clear(t *testing.T) {
	mem := ProvideSessionMemory(2)
	sessionID := NewSessionID()

	mem.Append(sessionID, "q", "a")
	mem.Clear(sessionID)

	assert.Empty(t, mem.History(sessionID))
}

func TestNewSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}

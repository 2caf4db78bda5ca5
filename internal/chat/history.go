package chat

import (
	"sync"
	"time"
)

// MessageRole marks whose turn a chat message represents.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in a conversation or prompt.
type Message struct {
	Role    MessageRole
	Content string
}

// maxHistoryLen caps how many messages (user + assistant) a conversation
// retains for LLM context.
const maxHistoryLen = 10

type conversation struct {
	mu         sync.Mutex
	messages   []Message
	lastActive time.Time
}

// History keeps a bounded per-key conversation log for the process lifetime.
// Appends for the same key are serialized so the append-then-trim invariant
// holds atomically; different keys never block each other.
type History struct {
	mu    sync.RWMutex
	convs map[string]*conversation
	now   func() time.Time
}

func NewHistory() *History {
	return &History{
		convs: make(map[string]*conversation),
		now:   time.Now,
	}
}

func (h *History) conv(key string) *conversation {
	h.mu.RLock()
	c, ok := h.convs[key]
	h.mu.RUnlock()
	if ok {
		return c
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok = h.convs[key]; ok {
		return c
	}
	c = &conversation{}
	h.convs[key] = c
	return c
}

// Append adds a message to the key's log, creating the log if absent, and
// trims to the most recent 10 entries.
func (h *History) Append(key string, msg Message) {
	c := h.conv(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if len(c.messages) > maxHistoryLen {
		c.messages = c.messages[len(c.messages)-maxHistoryLen:]
	}
	c.lastActive = h.now()
}

// Get returns a copy of the key's current log, or nil if none exists.
func (h *History) Get(key string) []Message {
	h.mu.RLock()
	c, ok := h.convs[key]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// ExpireIdle evicts conversations with no activity since the cutoff and
// returns how many were removed.
func (h *History) ExpireIdle(cutoff time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for key, c := range h.convs {
		c.mu.Lock()
		idle := c.lastActive.Before(cutoff)
		c.mu.Unlock()
		if idle {
			delete(h.convs, key)
			removed++
		}
	}
	return removed
}

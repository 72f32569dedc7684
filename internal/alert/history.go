package alert

import (
	"sync"
	"time"
)

type Entry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// History keeps the most recent messages in a fixed-size ring.
type History struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	now     func() time.Time
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = 1
	}
	return &History{entries: make([]Entry, size), now: time.Now}
}

func (h *History) Alert(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.next] = Entry{Time: h.now(), Message: message}
	h.next = (h.next + 1) % len(h.entries)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns the retained messages, oldest first.
func (h *History) Recent() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		return append([]Entry(nil), h.entries[:h.next]...)
	}
	out := make([]Entry, 0, len(h.entries))
	out = append(out, h.entries[h.next:]...)
	return append(out, h.entries[:h.next]...)
}

// Messages returns the retained message texts, oldest first.
func (h *History) Messages() []string {
	recent := h.Recent()
	out := make([]string, len(recent))
	for i, e := range recent {
		out[i] = e.Message
	}
	return out
}

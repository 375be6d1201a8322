package errors

import (
	"sync"
	"time"
)

// MessageType selects the styling of a status message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// Message is one entry shown in a TUI status line.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

const maxStatusHistory = 50

// StatusLine keeps the messages shown in a TUI footer. Only the latest is
// displayed; older entries are kept for the log pane up to maxStatusHistory.
type StatusLine struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
}

var _ Handler = (*StatusLine)(nil)

// NewStatusLine creates an empty status line.
func NewStatusLine() *StatusLine {
	return &StatusLine{now: time.Now}
}

func (s *StatusLine) Error(msg string) {
	s.add(msg, MessageTypeError)
}

func (s *StatusLine) Warning(msg string) {
	s.add(msg, MessageTypeWarning)
}

func (s *StatusLine) Info(msg string) {
	s.add(msg, MessageTypeInfo)
}

func (s *StatusLine) Success(msg string) {
	s.add(msg, MessageTypeSuccess)
}

func (s *StatusLine) add(text string, msgType MessageType) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Text: text, Type: msgType, Timestamp: s.now()})
	if len(s.messages) > maxStatusHistory {
		s.messages = s.messages[len(s.messages)-maxStatusHistory:]
	}
}

// Current returns the latest message if it is younger than ttl.
// A non-positive ttl never expires messages.
func (s *StatusLine) Current(ttl time.Duration) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	latest := s.messages[len(s.messages)-1]
	if ttl > 0 && s.now().Sub(latest.Timestamp) >= ttl {
		return Message{}, false
	}
	return latest, true
}

// History returns a copy of the kept messages, oldest first.
func (s *StatusLine) History() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Clear drops all messages.
func (s *StatusLine) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Idyll-Intelligent-Systems/UNIUN/events"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

// MessageService keeps direct messages in process memory: an append-only
// log plus a per-(reader, peer) read watermark. Reading a thread advances
// the reader's watermark; the unread badge never does.
type MessageService struct {
	mu        sync.Mutex
	messages  []model.Message
	lastReads map[string]time.Time
	pub       *events.Publisher
}

func NewMessageService(pub *events.Publisher) *MessageService {
	return &MessageService{
		lastReads: map[string]time.Time{},
		pub:       pub,
	}
}

func readKey(me, peer string) string { return me + "|" + peer }

// Send appends a message to the log. Text is truncated to the maximum
// message length; empty text is rejected.
func (s *MessageService) Send(from, to, text string) (*model.Message, error) {
	if runes := []rune(text); len(runes) > model.MaxMessageLen {
		text = string(runes[:model.MaxMessageLen])
	}
	if text == "" {
		return nil, apperrors.ErrTextRequired
	}

	msg := model.Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Text:      text,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	s.pub.Publish(events.MessageSent, events.MessageSentEvent{
		MessageID: msg.ID,
		From:      msg.From,
		To:        msg.To,
		CreatedAt: msg.CreatedAt,
	})

	return &msg, nil
}

// Thread returns both directions of the conversation in send order and
// marks the thread read for the caller.
func (s *MessageService) Thread(me, peer string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := make([]model.Message, 0)
	for _, m := range s.messages {
		if (m.From == me && m.To == peer) || (m.From == peer && m.To == me) {
			thread = append(thread, m)
		}
	}
	s.lastReads[readKey(me, peer)] = time.Now()
	return thread
}

// ListConversations summarizes each peer the caller has exchanged
// messages with: the last message either way and the unread count.
func (s *MessageService) ListConversations(me string) []model.ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	peers := make([]string, 0)
	seen := map[string]struct{}{}
	for _, m := range s.messages {
		var other string
		switch {
		case m.From == me:
			other = m.To
		case m.To == me:
			other = m.From
		default:
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			peers = append(peers, other)
		}
	}

	list := make([]model.ConversationSummary, 0, len(peers))
	for _, other := range peers {
		var last *model.Message
		unread := 0
		watermark := s.lastReads[readKey(me, other)]
		for i := range s.messages {
			m := s.messages[i]
			if m.From == me && m.To == other || m.From == other && m.To == me {
				last = &s.messages[i]
				if m.To == me && m.CreatedAt.After(watermark) {
					unread++
				}
			}
		}
		list = append(list, model.ConversationSummary{UserID: other, LastMessage: last, Unread: unread})
	}
	return list
}

// UnreadTotal sums unread counts across all conversations. Read-only:
// watermarks are not advanced.
func (s *MessageService) UnreadTotal(me string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	counted := map[string]struct{}{}
	for _, m := range s.messages {
		var other string
		switch {
		case m.From == me:
			other = m.To
		case m.To == me:
			other = m.From
		default:
			continue
		}
		if _, ok := counted[other]; ok {
			continue
		}
		counted[other] = struct{}{}

		watermark := s.lastReads[readKey(me, other)]
		for _, x := range s.messages {
			if x.From == other && x.To == me && x.CreatedAt.After(watermark) {
				total++
			}
		}
	}
	return total
}

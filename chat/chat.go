package chat

import (
	"time"

	"github.com/fazhza18-web/japanese-game-code/model"
)

const (
	// PollInterval is how often the open thread is silently refetched.
	PollInterval = 3 * time.Second

	// MessagePageSize is the page requested per poll.
	MessagePageSize = 50
)

// State owns the chat widget's client state: the conversation list and the
// messages of the conversation currently open. The widget moves through
// closed → list → thread; while a thread is open a fixed-interval poll
// refetches it and marks it read whenever a non-empty page arrives.
type State struct {
	conversations []model.Conversation
	active        string
	messages      []model.Message
}

func NewState() *State {
	return &State{}
}

func (s *State) SetConversations(convs []model.Conversation) {
	s.conversations = convs
}

func (s *State) Conversations() []model.Conversation { return s.conversations }

// TotalUnread sums unread counts across conversations for the widget badge.
func (s *State) TotalUnread() int {
	total := 0
	for _, c := range s.conversations {
		total += c.UnreadCount
	}
	return total
}

// Open selects a conversation and clears the previous thread's messages.
func (s *State) Open(conversationID string) {
	s.active = conversationID
	s.messages = nil
}

// CloseThread returns to the list view, stopping the poll's effect (a tick
// for a closed thread is ignored).
func (s *State) CloseThread() {
	s.active = ""
	s.messages = nil
}

func (s *State) Active() string { return s.active }

func (s *State) ActiveConversation() *model.Conversation {
	for i := range s.conversations {
		if s.conversations[i].ID == s.active {
			return &s.conversations[i]
		}
	}
	return nil
}

// SetMessages installs a fetched page for the given conversation and
// reports whether it was non-empty, which is the caller's cue to issue a
// mark-as-read. Pages for a conversation that is no longer open are
// discarded.
func (s *State) SetMessages(conversationID string, msgs []model.Message) (nonEmpty bool) {
	if conversationID != s.active {
		return false
	}
	s.messages = msgs
	return len(msgs) > 0
}

func (s *State) Messages() []model.Message { return s.messages }

// Append adds the server's copy of a just-sent message to the thread. This
// path is not polled concurrently, so no reconciliation is needed.
func (s *State) Append(m model.Message) {
	s.messages = append(s.messages, m)
}

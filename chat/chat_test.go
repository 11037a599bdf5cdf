package chat

import (
	"testing"

	"github.com/fazhza18-web/japanese-game-code/model"
)

func TestTotalUnread(t *testing.T) {
	s := NewState()
	if got := s.TotalUnread(); got != 0 {
		t.Errorf("TotalUnread() = %d for no conversations, want 0", got)
	}

	s.SetConversations([]model.Conversation{
		{ID: "1", UnreadCount: 2},
		{ID: "2", UnreadCount: 0},
		{ID: "3", UnreadCount: 5},
	})
	if got := s.TotalUnread(); got != 7 {
		t.Errorf("TotalUnread() = %d, want 7", got)
	}
}

func TestOpenClearsPreviousThread(t *testing.T) {
	s := NewState()
	s.Open("1")
	s.Append(model.Message{ID: "m1", Content: "hi"})

	s.Open("2")
	if s.Active() != "2" {
		t.Errorf("active = %q, want 2", s.Active())
	}
	if len(s.Messages()) != 0 {
		t.Error("messages of the previous thread survived Open")
	}
}

func TestSetMessages(t *testing.T) {
	s := NewState()
	s.Open("1")

	// Non-empty page for the open conversation: install and cue mark-read.
	if !s.SetMessages("1", []model.Message{{ID: "m1"}}) {
		t.Error("non-empty page did not report nonEmpty")
	}
	if len(s.Messages()) != 1 {
		t.Fatalf("got %d messages, want 1", len(s.Messages()))
	}

	// Empty page: installed, but no mark-read.
	if s.SetMessages("1", nil) {
		t.Error("empty page reported nonEmpty")
	}
	if len(s.Messages()) != 0 {
		t.Error("empty page was not installed")
	}
}

func TestSetMessages_StaleConversationDiscarded(t *testing.T) {
	s := NewState()
	s.Open("1")
	s.SetMessages("1", []model.Message{{ID: "m1"}})

	// A slow poll response for a thread the user already left must not
	// land, and must not trigger a mark-read.
	s.Open("2")
	if s.SetMessages("1", []model.Message{{ID: "m2"}, {ID: "m3"}}) {
		t.Error("stale page reported nonEmpty")
	}
	if len(s.Messages()) != 0 {
		t.Error("stale page overwrote the open thread")
	}
}

func TestCloseThread(t *testing.T) {
	s := NewState()
	s.Open("1")
	s.Append(model.Message{ID: "m1"})

	s.CloseThread()
	if s.Active() != "" {
		t.Errorf("active = %q after CloseThread, want empty", s.Active())
	}
	if len(s.Messages()) != 0 {
		t.Error("messages survived CloseThread")
	}
}

func TestActiveConversation(t *testing.T) {
	s := NewState()
	s.SetConversations([]model.Conversation{
		{ID: "1", OtherUser: model.User{Name: "Alice"}},
		{ID: "2", OtherUser: model.User{Name: "Bob"}},
	})

	if s.ActiveConversation() != nil {
		t.Error("ActiveConversation() != nil with no thread open")
	}

	s.Open("2")
	conv := s.ActiveConversation()
	if conv == nil || conv.OtherUser.Name != "Bob" {
		t.Errorf("ActiveConversation() = %v, want Bob's", conv)
	}
}

func TestAppend(t *testing.T) {
	s := NewState()
	s.Open("1")
	s.SetMessages("1", []model.Message{{ID: "m1"}})
	s.Append(model.Message{ID: "m2", Content: "sent"})

	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1].ID != "m2" {
		t.Errorf("messages after Append = %v", msgs)
	}
}

package mvc

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

func TestChatPoll_StaleThreadChainDropped(t *testing.T) {
	m := InitialChatModel(&Ctx{}, "")
	m.state.SetConversations([]model.Conversation{
		{ID: "c1", OtherUser: model.User{Name: "Alice"}},
	})

	next, _ := m.Update(key(tea.KeyEnter))
	m = next.(ChatPage)
	staleSeq := m.pollSeq

	// Close the thread and reopen it inside the poll window. The old
	// chain's tick must be dropped, or the cadence halves.
	next, _ = m.Update(key(tea.KeyEscape))
	m = next.(ChatPage)
	next, _ = m.Update(key(tea.KeyEnter))
	m = next.(ChatPage)
	if m.state.Active() != "c1" {
		t.Fatalf("active = %q after reopen, want c1", m.state.Active())
	}

	next, cmd := m.Update(message.ChatTickMsg{Seq: staleSeq})
	m = next.(ChatPage)
	if cmd != nil {
		t.Error("stale poll tick refetched and re-armed")
	}

	_, cmd = m.Update(message.ChatTickMsg{Seq: m.pollSeq})
	if cmd == nil {
		t.Error("live poll tick did not refetch and re-arm")
	}
}

func TestChatPoll_ClosedThreadDropsTick(t *testing.T) {
	m := InitialChatModel(&Ctx{}, "")
	m.state.SetConversations([]model.Conversation{{ID: "c1"}})

	next, _ := m.Update(key(tea.KeyEnter))
	m = next.(ChatPage)
	seq := m.pollSeq

	next, _ = m.Update(key(tea.KeyEscape))
	m = next.(ChatPage)

	_, cmd := m.Update(message.ChatTickMsg{Seq: seq})
	if cmd != nil {
		t.Error("tick for a closed thread re-armed its chain")
	}
}

func TestChatStartedConversation_RestampsPoll(t *testing.T) {
	m := InitialChatModel(&Ctx{}, "")
	m.state.SetConversations([]model.Conversation{{ID: "c1"}})

	next, _ := m.Update(key(tea.KeyEnter))
	m = next.(ChatPage)
	oldSeq := m.pollSeq

	// A conversation opened by a hand-off replaces the open thread; the
	// previous chain must go stale.
	next, _ = m.Update(message.ConversationStartedMsg(model.Conversation{ID: "c2"}))
	m = next.(ChatPage)
	if m.state.Active() != "c2" {
		t.Fatalf("active = %q, want c2", m.state.Active())
	}
	if m.pollSeq == oldSeq {
		t.Error("opening a started conversation kept the old poll stamp")
	}

	_, cmd := m.Update(message.ChatTickMsg{Seq: oldSeq})
	if cmd != nil {
		t.Error("stale poll tick re-armed after the thread switch")
	}
}

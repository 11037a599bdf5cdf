package friends

import (
	"testing"

	"github.com/fazhza18-web/japanese-game-code/model"
)

func TestSetQuery_MinLength(t *testing.T) {
	tests := []struct {
		name  string
		query string
		arm   bool
	}{
		{"Empty", "", false},
		{"OneChar", "a", false},
		{"WhitespacePadded", "  a  ", false},
		{"OnlySpaces", "     ", false},
		{"TwoChars", "ab", true},
		{"TwoCharsPadded", " ab ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearcher()
			arm, _ := s.SetQuery(tt.query)
			if arm != tt.arm {
				t.Errorf("SetQuery(%q) arm = %v, want %v", tt.query, arm, tt.arm)
			}
		})
	}
}

func TestSetQuery_ShortQueryClearsResults(t *testing.T) {
	s := NewSearcher()
	s.SetQuery("alice")
	s.SetResults([]model.SearchResult{{ID: "1", Name: "Alice"}})

	s.SetQuery("a")
	if len(s.Results()) != 0 {
		t.Error("results survived a below-minimum query")
	}
}

func TestDebounce_OnlyLastTimerFires(t *testing.T) {
	s := NewSearcher()

	// A burst of keystrokes arms three timers; only the last generation is
	// still current when they fire.
	_, seq1 := s.SetQuery("al")
	_, seq2 := s.SetQuery("ali")
	_, seq3 := s.SetQuery("alic")

	if s.ShouldSearch(seq1) {
		t.Error("stale timer 1 would have searched")
	}
	if s.ShouldSearch(seq2) {
		t.Error("stale timer 2 would have searched")
	}
	if !s.ShouldSearch(seq3) {
		t.Error("latest timer did not search")
	}
}

func TestDebounce_ShorteningBelowMinimumCancels(t *testing.T) {
	s := NewSearcher()
	_, seq := s.SetQuery("ab")

	// The query drops below the minimum before the timer fires; even a
	// matching generation must not search.
	s.SetQuery("a")
	if s.ShouldSearch(seq) {
		t.Error("stale timer searched after the query shrank")
	}
}

func TestQuery_Trimmed(t *testing.T) {
	s := NewSearcher()
	s.SetQuery("  bob  ")
	if got := s.Query(); got != "bob" {
		t.Errorf("Query() = %q, want bob", got)
	}
}

func TestActionLabel(t *testing.T) {
	tests := []struct {
		status model.FriendStatus
		want   string
	}{
		{model.FriendStatusNone, "add friend"},
		{"", "add friend"},
		{model.FriendStatusSent, "request sent"},
		{model.FriendStatusPending, "accept pending"},
		{model.FriendStatusAccepted, "already friends"},
	}

	for _, tt := range tests {
		if got := ActionLabel(tt.status); got != tt.want {
			t.Errorf("ActionLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestCanSendRequest(t *testing.T) {
	if !CanSendRequest(model.FriendStatusNone) || !CanSendRequest("") {
		t.Error("add friend should apply with no relationship")
	}
	for _, status := range []model.FriendStatus{model.FriendStatusSent, model.FriendStatusPending, model.FriendStatusAccepted} {
		if CanSendRequest(status) {
			t.Errorf("CanSendRequest(%q) = true, want false", status)
		}
	}
}

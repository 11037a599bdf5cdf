package message

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/model"
)

// SendTimedMessage delivers msg after t. Screens use it for poll ticks,
// debounce windows and transient info banners.
func SendTimedMessage(msg tea.Msg, t time.Duration) func() tea.Msg {
	return func() tea.Msg {
		timer := time.NewTimer(t)
		<-timer.C

		return msg
	}
}

// ErrMsg carries a user-visible failure into a screen's Update.
type ErrMsg struct{ Err error }

// AuthExpiredMsg means the backend rejected the token; every screen
// returns to the login page on it.
type AuthExpiredMsg struct{}

// InfoMsg is a transient banner line.
type InfoMsg string

// ResetMsg clears a transient banner.
type ResetMsg struct{}

// Session

type LoggedInMsg struct {
	Token string
	User  model.User
}

type RegisteredMsg struct{}

type MeMsg model.User

// Feed

type FeedTickMsg struct{}

type PostsMsg struct {
	Posts  []model.Post
	Silent bool
}

type PostCreatedMsg model.Post
type PostUpdatedMsg model.Post
type PostDeletedMsg struct{ ID string }

type CommentsMsg struct {
	PostID   string
	Comments []model.Comment
}

type CommentAddedMsg model.Comment
type CommentUpdatedMsg model.Comment
type CommentDeletedMsg struct{ PostID, ID string }

type ReactionsMsg struct {
	PostID  string
	Summary model.ReactionSummary
}

// PickerHideMsg closes the reaction picker after its hide delay; Seq lets
// a re-opened picker ignore a stale timer.
type PickerHideMsg struct {
	PostID string
	Seq    int
}

type HistoryMsg struct {
	PostID  string
	Entries []model.EditHistory
}

// Chat

// ChatTickMsg drives the open thread's poll chain. Seq identifies the
// chain; a tick from a thread that was closed or reopened is dropped so
// the cadence never doubles.
type ChatTickMsg struct{ Seq int }

type ConversationsMsg []model.Conversation

type MessagesMsg struct {
	ConversationID string
	Messages       []model.Message
}

type MessageSentMsg model.Message
type MarkedReadMsg struct{ ConversationID string }
type ConversationStartedMsg model.Conversation

// Game

// GameTickMsg advances the round clock. Seq identifies the round's tick
// chain; a tick armed before a reset or restart is dropped.
type GameTickMsg struct{ Seq int }

// NextWordMsg advances to the next prompt after the post-answer delay.
type NextWordMsg struct{ Seq int }

type TokenAnimateMsg struct{ ID string }
type TokenGoneMsg struct{ ID string }

type ScoreSavedMsg struct{}

// LeaderboardTickMsg refreshes the open leaderboard. Seq identifies the
// chain armed when the board was opened.
type LeaderboardTickMsg struct{ Seq int }

type LeaderboardMsg struct {
	Difficulty string
	Entries    []model.LeaderboardEntry
}

type BestScoreMsg struct{ Best *model.GameScore }

// Friends

// SearchDebounceMsg fires when a debounce window closes; only the message
// whose Seq is still current triggers a search.
type SearchDebounceMsg struct{ Seq int }

type SearchResultsMsg []model.SearchResult
type PendingRequestsMsg []model.FriendRequest
type FriendsMsg []model.User
type BlockedMsg []model.User

// Profile

type MyPostsMsg []model.Post
type ProfileSavedMsg model.User

// FriendListsMsg refreshes the friends and blocked lists together, since
// blocking moves a user from one to the other.
type FriendListsMsg struct {
	Friends []model.User
	Blocked []model.User
}

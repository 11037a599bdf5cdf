package model

import "time"

// User is the identity copy returned by the backend. The client never
// mutates it except through the profile edit flow.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID           string         `json:"id"`
	Content      string         `json:"content"`
	Author       string         `json:"author"`
	AuthorName   string         `json:"authorName"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
	Comments     int            `json:"comments"`
	Reactions    map[string]int `json:"reactions,omitempty"`
	UserReaction string         `json:"userReaction,omitempty"`
}

// Edited reports whether the post carries a revision newer than its creation.
func (p Post) Edited() bool {
	return p.UpdatedAt != nil && !p.UpdatedAt.Equal(p.CreatedAt)
}

type Comment struct {
	ID         string     `json:"id"`
	PostID     string     `json:"postId"`
	Content    string     `json:"content"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// ReactionSummary is the server's authoritative view of one post's
// reactions after a fetch or a toggle. The client never aggregates counts
// on its own.
type ReactionSummary struct {
	Reactions    map[string]int `json:"reactions"`
	UserReaction string         `json:"userReaction"`
}

type Conversation struct {
	ID          string    `json:"id"`
	OtherUser   User      `json:"otherUser"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UnreadCount int       `json:"unreadCount"`
}

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Sender    User      `json:"sender"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type FriendRequest struct {
	ID        string    `json:"id"`
	Requester User      `json:"requester"`
	CreatedAt time.Time `json:"createdAt"`
}

// FriendStatus is the relationship the backend reports for a search result.
type FriendStatus string

const (
	FriendStatusNone     FriendStatus = "none"
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	FriendStatusSent     FriendStatus = "sent"
)

type SearchResult struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Status FriendStatus `json:"status"`
}

type GameScore struct {
	Score      int    `json:"score"`
	WordsTyped int    `json:"wordsTyped"`
	Difficulty string `json:"difficulty"`
}

type LeaderboardEntry struct {
	ID         string `json:"id"`
	UserName   string `json:"userName"`
	Score      int    `json:"score"`
	WordsTyped int    `json:"wordsTyped"`
	Difficulty string `json:"difficulty"`
}

type EditHistory struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	OldContent string    `json:"oldContent"`
	NewContent string    `json:"newContent"`
	CreatedAt  time.Time `json:"createdAt"`
}

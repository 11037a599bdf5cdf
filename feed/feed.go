package feed

import (
	"time"

	"github.com/fazhza18-web/japanese-game-code/model"
)

const (
	// RefreshInterval is the cadence of the silent background refresh.
	RefreshInterval = 5 * time.Second

	// PickerHideDelay keeps the reaction picker open briefly after the
	// cursor leaves it, so moving between trigger and picker does not
	// flicker it closed.
	PickerHideDelay = 200 * time.Millisecond
)

// ReactionKinds is the fixed set the picker offers.
var ReactionKinds = []string{"like", "love", "laugh", "wow", "sad", "angry"}

// EditSession is a per-item edit buffer. At most one post and one comment
// edit is open at a time.
type EditSession struct {
	ID     string
	Buffer string
}

// Synchronizer owns the client's copy of the feed: the ordered post list,
// lazily loaded comments, and the open edit sessions. It performs no I/O;
// the UI feeds it server responses and it decides what to keep.
type Synchronizer struct {
	posts    []model.Post
	comments map[string][]model.Comment
	expanded string

	postEdit    *EditSession
	commentEdit *EditSession
}

func NewSynchronizer() *Synchronizer {
	return &Synchronizer{
		comments: make(map[string][]model.Comment),
	}
}

func (s *Synchronizer) Posts() []model.Post { return s.posts }

func (s *Synchronizer) Post(id string) *model.Post {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i]
		}
	}
	return nil
}

// Replace installs a fresh post list unconditionally (initial load and
// explicit refreshes).
func (s *Synchronizer) Replace(posts []model.Post) {
	s.posts = posts
}

// ApplySilent is the background-refresh path. It compares the ordered
// identifier sequence of the fetched list against the rendered one and
// replaces state only when the sequence differs, so an unchanged feed does
// not thrash the view or clobber in-flight local edits. Same-identifier
// content edits by other actors are not picked up until the sequence
// itself changes.
func (s *Synchronizer) ApplySilent(posts []model.Post) (replaced bool) {
	if sameIDSequence(s.posts, posts) {
		return false
	}
	s.posts = posts
	return true
}

func sameIDSequence(a, b []model.Post) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Prepend puts a freshly created post (the server's copy) at the top.
func (s *Synchronizer) Prepend(p model.Post) {
	s.posts = append([]model.Post{p}, s.posts...)
}

// MergePost folds a server-confirmed update over the local copy. Reaction
// state is kept when the response does not carry it; edits are never
// applied optimistically, so this only runs after the server answered.
func (s *Synchronizer) MergePost(p model.Post) {
	local := s.Post(p.ID)
	if local == nil {
		return
	}
	if p.Reactions == nil {
		p.Reactions = local.Reactions
		p.UserReaction = local.UserReaction
	}
	if p.Comments == 0 {
		p.Comments = local.Comments
	}
	*local = p
}

func (s *Synchronizer) Remove(id string) {
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	delete(s.comments, id)
	if s.expanded == id {
		s.expanded = ""
	}
}

// SetReactions installs the server's reaction summary for a post. Counts
// are clamped non-negative; the summary is authoritative otherwise.
func (s *Synchronizer) SetReactions(postID string, sum model.ReactionSummary) {
	p := s.Post(postID)
	if p == nil {
		return
	}
	for kind, n := range sum.Reactions {
		if n < 0 {
			sum.Reactions[kind] = 0
		}
	}
	p.Reactions = sum.Reactions
	p.UserReaction = sum.UserReaction
}

// Comments

// ToggleExpanded opens or closes a post's comment section and reports
// whether the comments still need loading.
func (s *Synchronizer) ToggleExpanded(postID string) (needsLoad bool) {
	if s.expanded == postID {
		s.expanded = ""
		return false
	}
	s.expanded = postID
	_, loaded := s.comments[postID]
	return !loaded
}

func (s *Synchronizer) Expanded() string { return s.expanded }

func (s *Synchronizer) SetComments(postID string, comments []model.Comment) {
	if comments == nil {
		comments = []model.Comment{}
	}
	s.comments[postID] = comments
}

func (s *Synchronizer) Comments(postID string) ([]model.Comment, bool) {
	c, ok := s.comments[postID]
	return c, ok
}

// AppendComment adds the server's new comment and bumps the post's count.
func (s *Synchronizer) AppendComment(c model.Comment) {
	if _, ok := s.comments[c.PostID]; ok {
		s.comments[c.PostID] = append(s.comments[c.PostID], c)
	}
	if p := s.Post(c.PostID); p != nil {
		p.Comments++
	}
}

// MergeComment folds a server-confirmed comment update over the local one.
func (s *Synchronizer) MergeComment(c model.Comment) {
	list := s.comments[c.PostID]
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = c
			return
		}
	}
}

func (s *Synchronizer) RemoveComment(postID, commentID string) {
	list, ok := s.comments[postID]
	if !ok {
		return
	}
	kept := list[:0]
	for _, c := range list {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	s.comments[postID] = kept
	if p := s.Post(postID); p != nil && p.Comments > 0 {
		p.Comments--
	}
}

// Edit sessions

func (s *Synchronizer) StartPostEdit(id string) bool {
	p := s.Post(id)
	if p == nil {
		return false
	}
	s.postEdit = &EditSession{ID: id, Buffer: p.Content}
	return true
}

func (s *Synchronizer) PostEdit() *EditSession { return s.postEdit }
func (s *Synchronizer) EndPostEdit()           { s.postEdit = nil }

func (s *Synchronizer) StartCommentEdit(postID, commentID string) bool {
	for _, c := range s.comments[postID] {
		if c.ID == commentID {
			s.commentEdit = &EditSession{ID: commentID, Buffer: c.Content}
			return true
		}
	}
	return false
}

func (s *Synchronizer) CommentEdit() *EditSession { return s.commentEdit }
func (s *Synchronizer) EndCommentEdit()           { s.commentEdit = nil }

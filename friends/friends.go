package friends

import (
	"strings"
	"time"

	"github.com/fazhza18-web/japanese-game-code/model"
)

const (
	// MinQueryLen is the trimmed length a query must reach before any
	// network call is made.
	MinQueryLen = 2

	// DebounceDelay collapses a keystroke burst into one search.
	DebounceDelay = 500 * time.Millisecond
)

// Searcher owns the user-search state: the live query, its debounce
// generation, and the result and pending-request lists. Each keystroke
// bumps the generation; only the timer that still matches it fires, so a
// burst of edits inside the debounce window issues exactly one request.
type Searcher struct {
	query   string
	seq     int
	results []model.SearchResult
	pending []model.FriendRequest
}

func NewSearcher() *Searcher {
	return &Searcher{}
}

// SetQuery records a new query. It returns whether a debounce timer should
// be armed and the generation to stamp it with. Queries below MinQueryLen
// never arm a timer and clear the results.
func (s *Searcher) SetQuery(q string) (arm bool, seq int) {
	s.query = q
	s.seq++
	if len(strings.TrimSpace(q)) < MinQueryLen {
		s.results = nil
		return false, s.seq
	}
	return true, s.seq
}

// ShouldSearch reports whether a fired timer is still the latest one.
func (s *Searcher) ShouldSearch(seq int) bool {
	return seq == s.seq && len(strings.TrimSpace(s.query)) >= MinQueryLen
}

func (s *Searcher) Query() string {
	return strings.TrimSpace(s.query)
}

func (s *Searcher) SetResults(results []model.SearchResult) {
	s.results = results
}

func (s *Searcher) Results() []model.SearchResult { return s.results }

func (s *Searcher) SetPending(reqs []model.FriendRequest) {
	s.pending = reqs
}

func (s *Searcher) Pending() []model.FriendRequest { return s.pending }

// ActionLabel is the affordance shown next to a result, driven entirely by
// the backend-supplied relationship status.
func ActionLabel(status model.FriendStatus) string {
	switch status {
	case model.FriendStatusAccepted:
		return "already friends"
	case model.FriendStatusPending:
		return "accept pending"
	case model.FriendStatusSent:
		return "request sent"
	default:
		return "add friend"
	}
}

// CanSendRequest reports whether the add-friend action applies.
func CanSendRequest(status model.FriendStatus) bool {
	return status == model.FriendStatusNone || status == ""
}

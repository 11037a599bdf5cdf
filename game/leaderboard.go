package game

import (
	"time"

	"github.com/fazhza18-web/japanese-game-code/model"
)

// LeaderboardRefresh is the auto-refresh cadence of the open leaderboard.
const LeaderboardRefresh = 5 * time.Second

// Tabs is the fixed tab order of the leaderboard view.
var Tabs = []Difficulty{All, Easy, Medium, Hard}

// Leaderboard is the client-side view state for the ranked list. Ranking
// and tie-breaks are entirely the backend's; the client renders the given
// order and decorates the top three.
type Leaderboard struct {
	open    bool
	tab     int
	entries []model.LeaderboardEntry
	best    *model.GameScore
	loading bool
}

func (l *Leaderboard) Open()        { l.open = true; l.loading = true }
func (l *Leaderboard) Close()       { l.open = false }
func (l *Leaderboard) IsOpen() bool { return l.open }

func (l *Leaderboard) Tab() Difficulty { return Tabs[l.tab] }
func (l *Leaderboard) TabIndex() int   { return l.tab }

// NextTab / PrevTab cycle through all/easy/medium/hard.
func (l *Leaderboard) NextTab() {
	l.tab = (l.tab + 1) % len(Tabs)
	l.loading = true
}

func (l *Leaderboard) PrevTab() {
	l.tab = (l.tab + len(Tabs) - 1) % len(Tabs)
	l.loading = true
}

// SetEntries ignores results for a tab that is no longer selected, so a
// slow response cannot overwrite the active tab's list.
func (l *Leaderboard) SetEntries(tab Difficulty, entries []model.LeaderboardEntry) {
	if tab != l.Tab() {
		return
	}
	l.entries = entries
	l.loading = false
}

func (l *Leaderboard) Entries() []model.LeaderboardEntry { return l.entries }
func (l *Leaderboard) Loading() bool                     { return l.loading }

func (l *Leaderboard) SetBest(best *model.GameScore) { l.best = best }
func (l *Leaderboard) Best() *model.GameScore        { return l.best }

// QueryFor maps a tab to the API's difficulty path segment ("" = overall).
func QueryFor(tab Difficulty) string {
	if tab == All {
		return ""
	}
	return string(tab)
}

// Medal returns the fixed label for the top three ranks (zero-based).
func Medal(rank int) string {
	switch rank {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return ""
	}
}

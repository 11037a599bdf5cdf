package game

import (
	"testing"
)

func TestWordsFor_Partitions(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		wantPoints int
	}{
		{Easy, 10},
		{Medium, 20},
		{Hard, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			pool := wordsFor(tt.difficulty)
			if len(pool) == 0 {
				t.Fatal("partition is empty")
			}
			for _, w := range pool {
				if w.Difficulty != tt.difficulty {
					t.Errorf("word %q has difficulty %s, want %s", w.Word, w.Difficulty, tt.difficulty)
				}
				if w.Points != tt.wantPoints {
					t.Errorf("word %q has %d points, want %d", w.Word, w.Points, tt.wantPoints)
				}
			}
		})
	}
}

func TestWordsFor_AllAndFallback(t *testing.T) {
	if got := wordsFor(All); len(got) != len(Words) {
		t.Errorf("All returned %d words, want the full table of %d", len(got), len(Words))
	}
	// An unknown difficulty has an empty partition and must fall back to
	// the full table so a round always has a next word.
	if got := wordsFor(Difficulty("expert")); len(got) != len(Words) {
		t.Errorf("unknown difficulty returned %d words, want fallback of %d", len(got), len(Words))
	}
}

func TestRound_StartResetsEverything(t *testing.T) {
	r := NewRound(Easy)
	r.Start()
	r.score = 120
	r.timeLeft = 3

	r.Start()

	if r.Phase() != Running {
		t.Errorf("phase = %v, want Running", r.Phase())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d, want 0", r.Score())
	}
	if r.TimeLeft() != RoundSeconds {
		t.Errorf("timeLeft = %d, want %d", r.TimeLeft(), RoundSeconds)
	}
	if r.Current() == nil {
		t.Error("no current word after Start")
	}
}

func TestRound_TickRunsDownToEnded(t *testing.T) {
	r := NewRound(All)
	r.Start()

	for i := 0; i < RoundSeconds-1; i++ {
		if ended := r.Tick(); ended {
			t.Fatalf("round ended early at tick %d", i)
		}
	}
	if ended := r.Tick(); !ended {
		t.Fatal("last tick did not end the round")
	}
	if r.Phase() != Ended {
		t.Errorf("phase = %v, want Ended", r.Phase())
	}
	if r.TimeLeft() != 0 {
		t.Errorf("timeLeft = %d, want 0", r.TimeLeft())
	}
	// Further ticks are no-ops.
	if ended := r.Tick(); ended {
		t.Error("tick after the end reported ended again")
	}
}

func TestRound_PauseFreezesClockAndWord(t *testing.T) {
	r := NewRound(All)
	r.Start()
	word := r.Current().Word

	r.Pause()
	before := r.TimeLeft()
	for i := 0; i < 5; i++ {
		r.Tick()
	}
	if r.TimeLeft() != before {
		t.Errorf("timeLeft moved to %d while paused, want %d", r.TimeLeft(), before)
	}

	r.Resume()
	if r.Phase() != Running {
		t.Errorf("phase = %v after Resume, want Running", r.Phase())
	}
	if r.Current().Word != word {
		t.Errorf("current word changed across pause: %q -> %q", word, r.Current().Word)
	}
}

func TestRound_CorrectAnswer(t *testing.T) {
	r := NewRound(All)
	r.Start()
	word := r.Current()
	timeBefore := r.TimeLeft()

	// Matching is case-insensitive and ignores surrounding whitespace.
	if !r.SetInput("  " + word.Word + "  ") {
		t.Fatalf("SetInput(%q) did not match", word.Word)
	}
	if r.Score() != word.Points {
		t.Errorf("score = %d, want %d", r.Score(), word.Points)
	}
	if r.TimeLeft() != timeBefore {
		t.Errorf("correct answer changed timeLeft from %d to %d", timeBefore, r.TimeLeft())
	}
	if len(r.Tokens()) != 1 {
		t.Errorf("got %d drop tokens, want 1", len(r.Tokens()))
	}

	// Until NextWord, further input cannot score against the same word.
	if r.SetInput(word.Word) {
		t.Error("matched again before NextWord")
	}

	r.NextWord()
	if r.Input() != "" {
		t.Errorf("input = %q after NextWord, want empty", r.Input())
	}
	if r.Current() == nil {
		t.Fatal("no current word after NextWord")
	}
}

func TestRound_WrongEnterClearsInputWithoutPenalty(t *testing.T) {
	r := NewRound(All)
	r.Start()
	timeBefore := r.TimeLeft()

	r.SetInput("definitely wrong")
	if r.SubmitInput() {
		t.Fatal("wrong answer reported as matched")
	}
	if r.Input() != "" {
		t.Errorf("input = %q after wrong Enter, want empty", r.Input())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d after wrong Enter, want 0", r.Score())
	}
	if r.TimeLeft() != timeBefore {
		t.Errorf("wrong Enter changed timeLeft from %d to %d", timeBefore, r.TimeLeft())
	}
}

func TestRound_TokensAnimateAndExpire(t *testing.T) {
	r := NewRound(All)
	r.Start()
	scoreBefore := r.Score()
	r.SetInput(r.Current().Word)
	scoreAfter := r.Score()

	id := r.Tokens()[0].ID
	r.AnimateToken(id)
	if !r.Tokens()[0].AtTarget {
		t.Error("token not at target after AnimateToken")
	}
	r.RemoveToken(id)
	if len(r.Tokens()) != 0 {
		t.Errorf("got %d tokens after RemoveToken, want 0", len(r.Tokens()))
	}
	if r.Score() != scoreAfter || scoreAfter == scoreBefore {
		t.Error("token lifecycle affected the score")
	}
}

func TestRound_ScoreReportExactlyOnce(t *testing.T) {
	r := NewRound(Medium)
	r.Start()

	// Not yet ended.
	if _, ok := r.ScoreReport(); ok {
		t.Error("ScoreReport ok for a running round")
	}

	r.score = 50
	r.phase = Ended

	report, ok := r.ScoreReport()
	if !ok {
		t.Fatal("ScoreReport not ok for a finished round")
	}
	if report.Score != 50 {
		t.Errorf("report.Score = %d, want 50", report.Score)
	}
	if report.WordsTyped != 3 {
		t.Errorf("report.WordsTyped = %d, want 3", report.WordsTyped)
	}
	if report.Difficulty != string(Medium) {
		t.Errorf("report.Difficulty = %q, want %q", report.Difficulty, Medium)
	}

	if _, ok := r.ScoreReport(); ok {
		t.Error("second ScoreReport ok, want exactly-once")
	}
}

func TestRound_ScoreReportSkipsZeroScore(t *testing.T) {
	r := NewRound(All)
	r.Start()
	r.phase = Ended

	if _, ok := r.ScoreReport(); ok {
		t.Error("ScoreReport ok for a zero score")
	}
}

func TestRound_ResetNeverSubmits(t *testing.T) {
	r := NewRound(All)
	r.Start()
	r.score = 90
	r.Reset()

	if r.Phase() != Idle {
		t.Errorf("phase = %v after Reset, want Idle", r.Phase())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d after Reset, want 0", r.Score())
	}
	if _, ok := r.ScoreReport(); ok {
		t.Error("ScoreReport ok after Reset")
	}
}

func TestRound_SetDifficultyBlockedMidRound(t *testing.T) {
	r := NewRound(Easy)
	r.Start()
	r.SetDifficulty(Hard)
	if r.Difficulty() != Easy {
		t.Errorf("difficulty changed to %s mid-round", r.Difficulty())
	}

	r.Reset()
	r.SetDifficulty(Hard)
	if r.Difficulty() != Hard {
		t.Errorf("difficulty = %s after Reset, want hard", r.Difficulty())
	}
}

func TestLeaderboard_TabsAndStaleEntries(t *testing.T) {
	l := &Leaderboard{}
	l.Open()
	if !l.IsOpen() || !l.Loading() {
		t.Fatal("Open should mark the board open and loading")
	}
	if l.Tab() != All {
		t.Errorf("initial tab = %s, want all", l.Tab())
	}

	l.NextTab()
	if l.Tab() != Easy {
		t.Errorf("tab after NextTab = %s, want easy", l.Tab())
	}

	// A late response for the previous tab must not land.
	l.SetEntries(All, nil)
	if !l.Loading() {
		t.Error("stale entries cleared the loading flag")
	}
	l.SetEntries(Easy, nil)
	if l.Loading() {
		t.Error("current-tab entries did not clear the loading flag")
	}

	l.PrevTab()
	if l.Tab() != All {
		t.Errorf("tab after PrevTab = %s, want all", l.Tab())
	}
	l.PrevTab()
	if l.Tab() != Hard {
		t.Errorf("tab wrap after PrevTab = %s, want hard", l.Tab())
	}
}

func TestQueryFor(t *testing.T) {
	if got := QueryFor(All); got != "" {
		t.Errorf("QueryFor(All) = %q, want empty", got)
	}
	if got := QueryFor(Hard); got != "hard" {
		t.Errorf("QueryFor(Hard) = %q, want hard", got)
	}
}

func TestMedal(t *testing.T) {
	want := []string{"🥇", "🥈", "🥉", "", ""}
	for rank, medal := range want {
		if got := Medal(rank); got != medal {
			t.Errorf("Medal(%d) = %q, want %q", rank, got, medal)
		}
	}
}

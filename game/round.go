package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fazhza18-web/japanese-game-code/model"
)

const (
	// RoundSeconds is the full round length; TickInterval how often the
	// countdown advances while running and unpaused.
	RoundSeconds = 60
	TickInterval = time.Second

	// NextWordDelay is how long the answered prompt lingers before the
	// next word appears.
	NextWordDelay = 500 * time.Millisecond

	// wordsTypedDivisor derives the reported words-typed count from the
	// final score.
	wordsTypedDivisor = 15
)

// Phase is the round's position in Idle → Running → {Paused ⇄ Running} →
// Ended → Idle.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Ended
)

// DropToken is the transient decoration spawned on a correct answer. It
// drifts to the plate and is removed after its animation; it never affects
// the score.
type DropToken struct {
	ID       string
	Image    string
	Slot     int
	AtTarget bool
}

// Round is the typing-game state machine. It owns no timers and does no
// I/O; the UI drives it with Tick, input changes and NextWord, and asks it
// for the score report when the round ends.
type Round struct {
	phase      Phase
	timeLeft   int
	score      int
	current    *Word
	input      string
	difficulty Difficulty

	awaitingNext bool
	submitted    bool
	tokens       []DropToken
	rng          *rand.Rand
}

func NewRound(difficulty Difficulty) *Round {
	return &Round{
		phase:      Idle,
		timeLeft:   RoundSeconds,
		difficulty: difficulty,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Round) Phase() Phase           { return r.phase }
func (r *Round) TimeLeft() int          { return r.timeLeft }
func (r *Round) Score() int             { return r.score }
func (r *Round) Current() *Word         { return r.current }
func (r *Round) Input() string          { return r.input }
func (r *Round) Difficulty() Difficulty { return r.difficulty }
func (r *Round) Tokens() []DropToken    { return r.tokens }

// SetDifficulty changes the filter for the next round. Only allowed while
// no round is in progress.
func (r *Round) SetDifficulty(d Difficulty) {
	if r.phase == Running || r.phase == Paused {
		return
	}
	r.difficulty = d
}

// Start begins a round from Idle or Ended: score to zero, clock to full,
// input cleared, first word drawn from the active partition.
func (r *Round) Start() {
	r.phase = Running
	r.timeLeft = RoundSeconds
	r.score = 0
	r.input = ""
	r.awaitingNext = false
	r.submitted = false
	r.tokens = nil
	r.current = r.pickWord()
}

// Pause freezes the countdown. The current word survives the pause.
func (r *Round) Pause() {
	if r.phase == Running {
		r.phase = Paused
	}
}

func (r *Round) Resume() {
	if r.phase == Paused {
		r.phase = Running
	}
}

// Reset returns to Idle and clears everything without side effects; in
// particular no score is submitted.
func (r *Round) Reset() {
	r.phase = Idle
	r.timeLeft = RoundSeconds
	r.score = 0
	r.input = ""
	r.current = nil
	r.awaitingNext = false
	r.submitted = false
	r.tokens = nil
}

// Tick advances the countdown by one second and reports whether the round
// just ended. It is a no-op unless running and unpaused.
func (r *Round) Tick() (ended bool) {
	if r.phase != Running {
		return false
	}
	r.timeLeft--
	if r.timeLeft <= 0 {
		r.timeLeft = 0
		r.phase = Ended
		return true
	}
	return false
}

// SetInput records what the player has typed so far and checks it against
// the current word, the same comparison as an explicit Enter.
func (r *Round) SetInput(s string) (matched bool) {
	if r.phase != Running {
		return false
	}
	r.input = s
	if r.awaitingNext {
		return false
	}
	if r.matches(s) {
		r.correctAnswer()
		return true
	}
	return false
}

// SubmitInput is the explicit Enter press. A wrong answer clears the input
// without touching score or time.
func (r *Round) SubmitInput() (matched bool) {
	if r.phase != Running || r.awaitingNext {
		return false
	}
	if r.matches(r.input) {
		r.correctAnswer()
		return true
	}
	r.input = ""
	return false
}

func (r *Round) matches(s string) bool {
	if r.current == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(s), r.current.Word)
}

func (r *Round) correctAnswer() {
	r.score += r.current.Points
	r.awaitingNext = true
	r.tokens = append(r.tokens, DropToken{
		ID:    uuid.New().String(),
		Image: r.current.Image,
		Slot:  r.rng.Intn(6),
	})
}

// NextWord draws the next prompt. The UI calls this NextWordDelay after a
// correct answer.
func (r *Round) NextWord() {
	if r.phase != Running {
		return
	}
	r.current = r.pickWord()
	r.input = ""
	r.awaitingNext = false
}

func (r *Round) pickWord() *Word {
	pool := wordsFor(r.difficulty)
	w := pool[r.rng.Intn(len(pool))]
	return &w
}

// AnimateToken sends the token toward the plate.
func (r *Round) AnimateToken(id string) {
	for i := range r.tokens {
		if r.tokens[i].ID == id {
			r.tokens[i].AtTarget = true
		}
	}
}

// RemoveToken drops the token once its animation is done.
func (r *Round) RemoveToken(id string) {
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
}

// WordsTyped is the derived count reported with the score.
func (r *Round) WordsTyped() int {
	return r.score / wordsTypedDivisor
}

// ScoreReport returns the submission payload for a finished round, exactly
// once. It returns ok=false for a zero score, an unfinished round, or a
// round whose score was already reported.
func (r *Round) ScoreReport() (report model.GameScore, ok bool) {
	if r.phase != Ended || r.score == 0 || r.submitted {
		return model.GameScore{}, false
	}
	r.submitted = true
	return model.GameScore{
		Score:      r.score,
		WordsTyped: r.WordsTyped(),
		Difficulty: string(r.difficulty),
	}, true
}

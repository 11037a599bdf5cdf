package mvc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/api"
	"github.com/fazhza18-web/japanese-game-code/game"
	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

const tokenAnimateDelay = 100 * time.Millisecond

type GamePage struct {
	round       *game.Round
	leaderboard *game.Leaderboard
	input       textinput.Model
	diffCursor  int
	wordSeq     int
	msg         string

	// tickSeq and boardSeq stamp the round's tick chain and the open
	// leaderboard's refresh chain. Start, reset, open and close bump
	// them, so a timer armed by a torn-down chain is dropped instead of
	// re-arming alongside the fresh one.
	tickSeq  int
	boardSeq int

	ctx *Ctx
}

func InitialGameModel(ctx *Ctx) GamePage {
	m := GamePage{ctx: ctx}

	m.round = game.NewRound(game.All)
	m.leaderboard = &game.Leaderboard{}

	m.input = textinput.New()
	m.input.Placeholder = "Type the word here..."

	return m
}

func (m GamePage) Init() tea.Cmd {
	return nil
}

func (m GamePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Feed typed characters to the input only mid-round, and check every
	// change against the current word, like the browser build checked on
	// each keystroke.
	if m.round.Phase() == game.Running {
		before := m.input.Value()
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		cmds = append(cmds, inputCmd)

		if after := m.input.Value(); after != before {
			if m.round.SetInput(after) {
				cmds = append(cmds, m.answerCmds()...)
			}
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		var cmd tea.Cmd
		next, cmd = m.handleKey(msg)
		if next != nil {
			return next, cmd
		}
		cmds = append(cmds, cmd)

	case message.GameTickMsg:
		if msg.Seq != m.tickSeq {
			break
		}
		if ended := m.round.Tick(); ended {
			m.input.Blur()
			if report, ok := m.round.ScoreReport(); ok {
				cmds = append(cmds, submitScoreCmd(m.ctx, report))
			}
		} else if m.round.Phase() == game.Running || m.round.Phase() == game.Paused {
			cmds = append(cmds, message.SendTimedMessage(message.GameTickMsg{Seq: m.tickSeq}, game.TickInterval))
		}

	case message.NextWordMsg:
		if msg.Seq == m.wordSeq {
			m.round.NextWord()
			m.input.Reset()
		}

	case message.TokenAnimateMsg:
		m.round.AnimateToken(msg.ID)

	case message.TokenGoneMsg:
		m.round.RemoveToken(msg.ID)

	case message.ScoreSavedMsg:
		m.msg = "score saved"
		cmds = append(cmds,
			bestScoreCmd(m.ctx),
			message.SendTimedMessage(message.ResetMsg{}, 5*time.Second),
		)
		if m.leaderboard.IsOpen() {
			cmds = append(cmds, leaderboardCmd(m.ctx, m.leaderboard.Tab()))
		}

	case message.LeaderboardTickMsg:
		if msg.Seq == m.boardSeq && m.leaderboard.IsOpen() {
			cmds = append(cmds,
				leaderboardCmd(m.ctx, m.leaderboard.Tab()),
				bestScoreCmd(m.ctx),
				message.SendTimedMessage(message.LeaderboardTickMsg{Seq: m.boardSeq}, game.LeaderboardRefresh),
			)
		}

	case message.LeaderboardMsg:
		m.leaderboard.SetEntries(game.Difficulty(msg.Difficulty), msg.Entries)

	case message.BestScoreMsg:
		m.leaderboard.SetBest(msg.Best)

	case message.ErrMsg:
		m.msg = msg.Err.Error()
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.AuthExpiredMsg:
		return expireSession(m.ctx)

	case message.ResetMsg:
		m.msg = ""
	}

	return m, tea.Batch(cmds...)
}

// answerCmds schedules the follow-ups of a correct answer: the token
// animation pair and the delayed next word.
func (m *GamePage) answerCmds() []tea.Cmd {
	m.wordSeq++
	cmds := []tea.Cmd{
		message.SendTimedMessage(message.NextWordMsg{Seq: m.wordSeq}, game.NextWordDelay),
	}
	tokens := m.round.Tokens()
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		cmds = append(cmds,
			message.SendTimedMessage(message.TokenAnimateMsg{ID: last.ID}, tokenAnimateDelay),
			message.SendTimedMessage(message.TokenGoneMsg{ID: last.ID}, tokenAnimateDelay+500*time.Millisecond),
		)
	}
	return cmds
}

func (m *GamePage) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.leaderboard.IsOpen() {
		switch key {
		case "esc", "ctrl+l":
			m.leaderboard.Close()
			m.boardSeq++
		case "right", "tab":
			m.leaderboard.NextTab()
			return nil, leaderboardCmd(m.ctx, m.leaderboard.Tab())
		case "left", "shift+tab":
			m.leaderboard.PrevTab()
			return nil, leaderboardCmd(m.ctx, m.leaderboard.Tab())
		case "ctrl+c":
			return nil, tea.Quit
		}
		return nil, nil
	}

	switch key {
	case "ctrl+c":
		return nil, tea.Quit
	case "esc":
		return InitialHomeModel(m.ctx), nil
	case "enter":
		if m.round.Phase() == game.Running {
			if m.round.SubmitInput() {
				return nil, tea.Batch(m.answerCmds()...)
			}
			m.input.Reset()
		}
	case "ctrl+s":
		if m.round.Phase() == game.Idle || m.round.Phase() == game.Ended {
			m.round.Start()
			m.input.Reset()
			m.input.Focus()
			m.tickSeq++
			return nil, message.SendTimedMessage(message.GameTickMsg{Seq: m.tickSeq}, game.TickInterval)
		}
	case "ctrl+p":
		switch m.round.Phase() {
		case game.Running:
			m.round.Pause()
		case game.Paused:
			m.round.Resume()
			m.input.Focus()
		}
	case "ctrl+r":
		m.round.Reset()
		m.input.Reset()
		m.input.Blur()
		m.tickSeq++
	case "ctrl+l":
		m.leaderboard.Open()
		m.boardSeq++
		return nil, tea.Batch(
			leaderboardCmd(m.ctx, m.leaderboard.Tab()),
			bestScoreCmd(m.ctx),
			message.SendTimedMessage(message.LeaderboardTickMsg{Seq: m.boardSeq}, game.LeaderboardRefresh),
		)
	case "ctrl+d":
		if m.round.Phase() == game.Idle || m.round.Phase() == game.Ended {
			m.diffCursor = (m.diffCursor + 1) % len(game.Tabs)
			m.round.SetDifficulty(game.Tabs[m.diffCursor])
		}
	}

	return nil, nil
}

func (m GamePage) View() string {
	if m.leaderboard.IsOpen() {
		return m.leaderboardView()
	}

	s := titleStyle.Render("🎮 Typing game") + "\n\n"

	switch m.round.Phase() {
	case game.Idle:
		s += "Pick a difficulty and start a round.\n\n"
		s += "Difficulty: " + m.renderDifficulty() + "\n\n"
		s += faintStyle.Render("ctrl+s start · ctrl+d difficulty · ctrl+l leaderboard · esc back") + "\n"

	case game.Running, game.Paused:
		s += fmt.Sprintf("Score: %d   ⏱ %ds left\n", m.round.Score(), m.round.TimeLeft())
		s += m.renderTimeBar() + "\n\n"

		if m.round.Phase() == game.Paused {
			s += "⏸ Paused\n\n"
			s += faintStyle.Render("ctrl+p resume · ctrl+r reset") + "\n"
			break
		}

		if w := m.round.Current(); w != nil {
			s += fmt.Sprintf("   %s  Type: %s  (+%d, %s)\n\n", w.Image, titleStyle.Render(w.Word), w.Points, w.Difficulty)
		}

		s += m.renderTokens()
		s += m.input.View() + "\n\n"
		s += faintStyle.Render("enter to submit · ctrl+p pause · ctrl+r reset") + "\n"

	case game.Ended:
		s += "🎉 Round over!\n\n"
		s += fmt.Sprintf("Final score: %d\n", m.round.Score())
		s += fmt.Sprintf("Words typed: %d\n\n", m.round.WordsTyped())
		s += faintStyle.Render("ctrl+s play again · ctrl+l leaderboard · esc back") + "\n"
	}

	if m.msg != "" {
		s += "\nInfo: " + m.msg + "\n"
	}

	return s
}

func (m GamePage) renderDifficulty() string {
	parts := make([]string, len(game.Tabs))
	for i, d := range game.Tabs {
		label := string(d)
		if i == m.diffCursor {
			label = cursorStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}

func (m GamePage) renderTimeBar() string {
	const width = 30
	filled := m.round.TimeLeft() * width / game.RoundSeconds
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// renderTokens draws the answered-word decorations drifting toward the
// plate on the right.
func (m GamePage) renderTokens() string {
	tokens := m.round.Tokens()
	line := make([]rune, 40)
	for i := range line {
		line[i] = ' '
	}
	out := string(line) + "🍽️\n"
	if len(tokens) == 0 {
		return out
	}

	var b strings.Builder
	for _, t := range tokens {
		pos := 5 + t.Slot*4
		if t.AtTarget {
			pos = len(line) - 2
		}
		b.WriteString(strings.Repeat(" ", pos) + t.Image + "\n")
	}
	b.WriteString(out)
	return b.String()
}

func (m GamePage) leaderboardView() string {
	s := titleStyle.Render("🏆 Leaderboard") + "\n\n"

	if best := m.leaderboard.Best(); best != nil {
		s += fmt.Sprintf("Your best: %d points · %d words · %s\n\n", best.Score, best.WordsTyped, bestDifficulty(best))
	}

	tabs := make([]string, len(game.Tabs))
	for i, d := range game.Tabs {
		label := string(d)
		if i == m.leaderboard.TabIndex() {
			label = cursorStyle.Render(label)
		}
		tabs[i] = label
	}
	s += strings.Join(tabs, " | ") + "\n"
	s += "_________________________\n"

	if m.leaderboard.Loading() {
		s += "Loading...\n"
	} else if len(m.leaderboard.Entries()) == 0 {
		s += "No scores yet\n"
	} else {
		for i, e := range m.leaderboard.Entries() {
			medal := game.Medal(i)
			if medal == "" {
				medal = "  "
			}
			s += fmt.Sprintf("%s %2d. %-20s %5d pts  %3d words  %s\n", medal, i+1, e.UserName, e.Score, e.WordsTyped, e.Difficulty)
		}
	}
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n"
	s += faintStyle.Render("tab to switch difficulty · refreshes every 5s · esc to close") + "\n"
	return s
}

func bestDifficulty(best *model.GameScore) string {
	if best.Difficulty == "" {
		return string(game.All)
	}
	return best.Difficulty
}

// Commands

// submitScoreCmd reports the finished round; the round guarantees this
// fires at most once per play.
func submitScoreCmd(ctx *Ctx, report model.GameScore) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.SubmitScore(bg(), report); err != nil {
			return errToMsg(err)
		}
		return message.ScoreSavedMsg{}
	}
}

func leaderboardCmd(ctx *Ctx, tab game.Difficulty) func() tea.Msg {
	return func() tea.Msg {
		entries, err := ctx.API.Leaderboard(bg(), game.QueryFor(tab))
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.LeaderboardMsg{Difficulty: string(tab), Entries: entries}
	}
}

func bestScoreCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		best, err := ctx.API.MyBestScore(bg())
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.BestScoreMsg{Best: best}
	}
}

package mvc

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/friends"
	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type SearchPage struct {
	searcher  *friends.Searcher
	searchBar textinput.Model
	cursor    int
	searching bool
	msg       string

	showPending   bool
	pendingCursor int

	ctx *Ctx
}

func InitialSearchModel(ctx *Ctx) SearchPage {
	m := SearchPage{ctx: ctx}

	m.searcher = friends.NewSearcher()
	m.searchBar = textinput.New()
	m.searchBar.Placeholder = "Search users (min 2 characters)..."
	m.searchBar.Focus()

	return m
}

func (m SearchPage) Init() tea.Cmd {
	return nil
}

func (m SearchPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	before := m.searchBar.Value()
	var barCmd tea.Cmd
	m.searchBar, barCmd = m.searchBar.Update(msg)
	cmds = append(cmds, barCmd)

	// Every keystroke bumps the debounce generation; only the last timer
	// of a burst still matches when it fires.
	if after := m.searchBar.Value(); after != before {
		if arm, seq := m.searcher.SetQuery(after); arm {
			cmds = append(cmds, message.SendTimedMessage(message.SearchDebounceMsg{Seq: seq}, friends.DebounceDelay))
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "left":
			if m.showPending {
				m.showPending = false
				break
			}
			return InitialHomeModel(m.ctx), nil
		case "down":
			if m.showPending {
				if m.pendingCursor < len(m.searcher.Pending())-1 {
					m.pendingCursor++
				}
				break
			}
			if m.cursor < len(m.searcher.Results())-1 {
				m.cursor++
			}
		case "up":
			if m.showPending {
				if m.pendingCursor > 0 {
					m.pendingCursor--
				}
				break
			}
			if m.cursor > 0 {
				m.cursor--
			}
		case "ctrl+p":
			m.showPending = !m.showPending
			if m.showPending {
				m.pendingCursor = 0
				cmds = append(cmds, pendingRequestsCmd(m.ctx))
			}
		case "ctrl+a":
			if m.showPending {
				if req := m.selectedPending(); req != nil {
					cmds = append(cmds, acceptRequestCmd(m.ctx, req.ID))
				}
				break
			}
			if res := m.selectedResult(); res != nil && friends.CanSendRequest(res.Status) {
				cmds = append(cmds, sendRequestCmd(m.ctx, res.ID, m.searcher.Query()))
			}
		case "ctrl+x":
			if m.showPending {
				if req := m.selectedPending(); req != nil {
					cmds = append(cmds, rejectRequestCmd(m.ctx, req.ID))
				}
			}
		case "ctrl+o":
			if res := m.selectedResult(); res != nil && res.ID != m.ctx.Session.User().ID {
				chat := InitialChatModel(m.ctx, res.ID)
				return chat, chat.Init()
			}
		}

	case message.SearchDebounceMsg:
		if m.searcher.ShouldSearch(msg.Seq) {
			m.searching = true
			cmds = append(cmds, searchCmd(m.ctx, m.searcher.Query()))
		}

	case message.SearchResultsMsg:
		m.searching = false
		m.searcher.SetResults(msg)
		if m.cursor >= len(msg) {
			m.cursor = 0
		}

	case message.PendingRequestsMsg:
		m.searcher.SetPending(msg)
		if m.pendingCursor >= len(msg) && m.pendingCursor > 0 {
			m.pendingCursor--
		}

	case message.InfoMsg:
		m.msg = string(msg)
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.ErrMsg:
		m.searching = false
		m.msg = msg.Err.Error()
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.AuthExpiredMsg:
		return expireSession(m.ctx)

	case message.ResetMsg:
		m.msg = ""
	}

	return m, tea.Batch(cmds...)
}

func (m *SearchPage) selectedResult() *model.SearchResult {
	results := m.searcher.Results()
	if m.cursor < 0 || m.cursor >= len(results) {
		return nil
	}
	return &results[m.cursor]
}

func (m *SearchPage) selectedPending() *model.FriendRequest {
	pending := m.searcher.Pending()
	if m.pendingCursor < 0 || m.pendingCursor >= len(pending) {
		return nil
	}
	return &pending[m.pendingCursor]
}

func (m SearchPage) View() string {
	if m.showPending {
		return m.pendingView()
	}

	s := titleStyle.Render("User search") + "\n\n"
	s += m.searchBar.View() + "\n"

	s += "_________________________\n"
	results := m.searcher.Results()
	if m.searching {
		s += "Searching...\n"
	} else if len(results) == 0 && m.searcher.Query() != "" {
		s += "No users found\n"
	}
	for i, r := range results {
		line := fmt.Sprintf("%s <%s> · %s", r.Name, r.Email, friends.ActionLabel(r.Status))
		if i == m.cursor {
			s += cursorStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n\n"

	if m.msg != "" {
		s += fmt.Sprintf("Info: %s\n\n", m.msg)
	}

	s += faintStyle.Render("ctrl+a add friend · ctrl+o message · ctrl+p pending requests · left back") + "\n"
	return s
}

func (m SearchPage) pendingView() string {
	s := titleStyle.Render("Pending friend requests") + "\n\n"

	pending := m.searcher.Pending()
	if len(pending) == 0 {
		s += "No pending requests\n"
	}
	for i, req := range pending {
		line := fmt.Sprintf("%s <%s>", req.Requester.Name, req.Requester.Email)
		if i == m.pendingCursor {
			s += cursorStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	if m.msg != "" {
		s += fmt.Sprintf("\nInfo: %s\n", m.msg)
	}

	s += faintStyle.Render("\nctrl+a accept · ctrl+x reject · left back to search") + "\n"
	return s
}

// Commands

func searchCmd(ctx *Ctx, query string) func() tea.Msg {
	return func() tea.Msg {
		results, err := ctx.API.SearchUsers(bg(), query)
		if err != nil {
			return errToMsg(err)
		}
		return message.SearchResultsMsg(results)
	}
}

func pendingRequestsCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		reqs, err := ctx.API.PendingRequests(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.PendingRequestsMsg(reqs)
	}
}

// sendRequestCmd fires the request, then re-runs the current search so the
// result's status chip flips to "request sent".
func sendRequestCmd(ctx *Ctx, userID, query string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.SendFriendRequest(bg(), userID); err != nil {
			return errToMsg(err)
		}
		if len(query) >= friends.MinQueryLen {
			results, err := ctx.API.SearchUsers(bg(), query)
			if err == nil {
				return message.SearchResultsMsg(results)
			}
		}
		return message.InfoMsg("friend request sent")
	}
}

func acceptRequestCmd(ctx *Ctx, requestID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.AcceptFriendRequest(bg(), requestID); err != nil {
			return errToMsg(err)
		}
		reqs, err := ctx.API.PendingRequests(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.PendingRequestsMsg(reqs)
	}
}

func rejectRequestCmd(ctx *Ctx, requestID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.RejectFriendRequest(bg(), requestID); err != nil {
			return errToMsg(err)
		}
		reqs, err := ctx.API.PendingRequests(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.PendingRequestsMsg(reqs)
	}
}

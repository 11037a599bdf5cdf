package mvc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fazhza18-web/japanese-game-code/api"
	"github.com/fazhza18-web/japanese-game-code/chat"
	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type ChatPage struct {
	state    *chat.State
	viewport viewport.Model
	textbox  textarea.Model
	cursor   int
	sending  bool
	msg      string

	meStyle    lipgloss.Style
	otherStyle lipgloss.Style

	// startWith opens (or creates) a conversation with this user as soon
	// as the screen comes up. Set when another screen hands off a "message
	// this user" action.
	startWith string

	// pollSeq stamps the open thread's poll chain. Opening or closing a
	// thread bumps it, so a tick armed for a previous thread is dropped
	// instead of re-arming next to the fresh chain.
	pollSeq int

	ctx *Ctx
}

func InitialChatModel(ctx *Ctx, startWithUserID string) ChatPage {
	m := ChatPage{ctx: ctx, startWith: startWithUserID}

	m.state = chat.NewState()
	m.viewport = viewport.New(80, 12)

	m.textbox = textarea.New()
	m.textbox.Placeholder = "Send a message..."
	m.textbox.Prompt = "┃ "
	m.textbox.CharLimit = 280
	m.textbox.ShowLineNumbers = false
	m.textbox.SetHeight(3)
	m.textbox.SetWidth(80)
	m.textbox.FocusedStyle.CursorLine = lipgloss.NewStyle()

	m.meStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8"))
	m.otherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45f"))

	return m
}

func (m ChatPage) Init() tea.Cmd {
	cmds := []tea.Cmd{conversationsCmd(m.ctx)}
	if m.startWith != "" {
		cmds = append(cmds, startConversationCmd(m.ctx, m.startWith))
	}
	return tea.Batch(cmds...)
}

func (m ChatPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.state.Active() != "" {
		m.textbox, cmd = m.textbox.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "left", "esc":
			if m.state.Active() != "" {
				m.state.CloseThread()
				m.textbox.Blur()
				m.pollSeq++
				break
			}
			return InitialHomeModel(m.ctx), nil
		case "down":
			if m.state.Active() == "" && m.cursor < len(m.state.Conversations())-1 {
				m.cursor++
			}
		case "up":
			if m.state.Active() == "" && m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.state.Active() != "" {
				break
			}
			convs := m.state.Conversations()
			if m.cursor >= 0 && m.cursor < len(convs) {
				conv := convs[m.cursor]
				m.state.Open(conv.ID)
				m.textbox.Focus()
				m.pollSeq++
				cmds = append(cmds,
					messagesCmd(m.ctx, conv.ID),
					message.SendTimedMessage(message.ChatTickMsg{Seq: m.pollSeq}, chat.PollInterval),
				)
			}
		case "ctrl+s":
			if m.state.Active() == "" || m.sending {
				break
			}
			content := strings.TrimSpace(m.textbox.Value())
			if content == "" {
				break
			}
			m.sending = true
			cmds = append(cmds, sendMessageCmd(m.ctx, m.state.Active(), content))
		case "ctrl+r":
			cmds = append(cmds, conversationsCmd(m.ctx))
		}

	case message.ChatTickMsg:
		// Poll only while the thread that armed this chain is still the
		// open one; closing or switching threads orphans the old chain.
		if msg.Seq == m.pollSeq && m.state.Active() != "" {
			cmds = append(cmds,
				messagesCmd(m.ctx, m.state.Active()),
				message.SendTimedMessage(message.ChatTickMsg{Seq: m.pollSeq}, chat.PollInterval),
			)
		}

	case message.ConversationsMsg:
		m.state.SetConversations(msg)
		if m.cursor >= len(msg) && m.cursor > 0 {
			m.cursor = len(msg) - 1
		}

	case message.MessagesMsg:
		if m.state.SetMessages(msg.ConversationID, msg.Messages) {
			cmds = append(cmds, markReadCmd(m.ctx, msg.ConversationID))
		}
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()

	case message.MarkedReadMsg:
		cmds = append(cmds, conversationsCmd(m.ctx))

	case message.MessageSentMsg:
		m.sending = false
		m.state.Append(model.Message(msg))
		m.textbox.Reset()
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		cmds = append(cmds, conversationsCmd(m.ctx))

	case message.ConversationStartedMsg:
		m.state.Open(msg.ID)
		m.textbox.Focus()
		m.pollSeq++
		cmds = append(cmds,
			conversationsCmd(m.ctx),
			messagesCmd(m.ctx, msg.ID),
			message.SendTimedMessage(message.ChatTickMsg{Seq: m.pollSeq}, chat.PollInterval),
		)

	case message.ErrMsg:
		m.sending = false
		m.msg = msg.Err.Error()
		cmds = append(cmds, message.SendTimedMessage(message.ResetMsg{}, 5*time.Second))

	case message.AuthExpiredMsg:
		return expireSession(m.ctx)

	case message.ResetMsg:
		m.msg = ""
	}

	return m, tea.Batch(cmds...)
}

func (m ChatPage) renderMessages() string {
	me := m.ctx.Session.User().ID
	var b strings.Builder
	for _, msgItem := range m.state.Messages() {
		style := m.otherStyle
		if msgItem.SenderID == me {
			style = m.meStyle
		}
		b.WriteString(style.Render("@"+msgItem.Sender.Name) + "\n")
		b.WriteString(msgItem.Content + "\n\n")
	}
	return b.String()
}

func (m ChatPage) View() string {
	if m.state.Active() == "" {
		return m.listView()
	}
	return m.threadView()
}

func (m ChatPage) listView() string {
	s := titleStyle.Render("Messages") + "\n"
	if total := m.state.TotalUnread(); total > 0 {
		s += fmt.Sprintf("%d unread\n", total)
	}
	s += "\n"

	convs := m.state.Conversations()
	if len(convs) == 0 {
		s += "No conversations yet. Find someone via user search.\n"
	}
	for i, c := range convs {
		line := c.OtherUser.Name
		if c.UnreadCount > 0 {
			line += fmt.Sprintf(" (%d)", c.UnreadCount)
		}
		line += faintStyle.Render("  " + c.UpdatedAt.Format("02 Jan 15:04"))
		if i == m.cursor {
			s += "\t" + cursorStyle.Render(line) + "\n"
		} else {
			s += "\t" + line + "\n"
		}
	}

	if m.msg != "" {
		s += "\n" + errorStyle.Render(m.msg) + "\n"
	}

	s += faintStyle.Render("\nenter to open · ctrl+r to refresh · left to go back") + "\n"
	return s
}

func (m ChatPage) threadView() string {
	name := "?"
	if conv := m.state.ActiveConversation(); conv != nil {
		name = conv.OtherUser.Name
	}

	s := fmt.Sprintf("Chat with '%s'\n", name)
	s += "_________________________\n"
	s += m.viewport.View() + "\n"
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n\n"
	s += m.textbox.View() + "\n"
	if m.sending {
		s += "Sending...\n"
	}
	if m.msg != "" {
		s += errorStyle.Render(m.msg) + "\n"
	}
	s += faintStyle.Render("ctrl+s to send · esc for conversation list") + "\n"
	return s
}

// Commands

func conversationsCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		convs, err := ctx.API.Conversations(bg())
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.ConversationsMsg(convs)
	}
}

func messagesCmd(ctx *Ctx, conversationID string) func() tea.Msg {
	return func() tea.Msg {
		msgs, err := ctx.API.Messages(bg(), conversationID, chat.MessagePageSize)
		if err != nil {
			// Thread polls stay silent on transient failures.
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.MessagesMsg{ConversationID: conversationID, Messages: msgs}
	}
}

func markReadCmd(ctx *Ctx, conversationID string) func() tea.Msg {
	return func() tea.Msg {
		if err := ctx.API.MarkRead(bg(), conversationID); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return message.AuthExpiredMsg{}
			}
			return nil
		}
		return message.MarkedReadMsg{ConversationID: conversationID}
	}
}

func sendMessageCmd(ctx *Ctx, conversationID, content string) func() tea.Msg {
	return func() tea.Msg {
		sent, err := ctx.API.SendMessage(bg(), conversationID, content)
		if err != nil {
			return errToMsg(err)
		}
		return message.MessageSentMsg(sent)
	}
}

func startConversationCmd(ctx *Ctx, userID string) func() tea.Msg {
	return func() tea.Msg {
		conv, err := ctx.API.StartConversation(bg(), userID)
		if err != nil {
			return errToMsg(err)
		}
		return message.ConversationStartedMsg(conv)
	}
}

package mvc

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type HomePage struct {
	options []string
	cursor  int
	msg     string

	ctx *Ctx
}

func InitialHomeModel(ctx *Ctx) HomePage {
	m := HomePage{ctx: ctx}

	m.options = []string{
		"Feed",
		"Messages",
		"Search users",
		"Typing game",
		"Profile",
		"Logout",
	}

	return m
}

func (m HomePage) Init() tea.Cmd {
	// The user may have been restored from a saved token; resolve it.
	if m.ctx.Session.User().ID == "" {
		return meCmd(m.ctx)
	}
	return nil
}

func (m HomePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down":
			m.cursor++
			if m.cursor >= len(m.options) {
				m.cursor = 0
			}
		case "up":
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.options) - 1
			}
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", "right":
			switch m.cursor {
			case 0:
				feed := InitialFeedModel(m.ctx)
				return feed, feed.Init()
			case 1:
				chat := InitialChatModel(m.ctx, "")
				return chat, chat.Init()
			case 2:
				return InitialSearchModel(m.ctx), nil
			case 3:
				return InitialGameModel(m.ctx), nil
			case 4:
				profile := InitialProfileModel(m.ctx)
				return profile, profile.Init()
			case 5:
				return expireSession(m.ctx)
			}
		}
	case message.MeMsg:
		m.ctx.Session.SetUser(model.User(msg))
	case message.AuthExpiredMsg:
		return expireSession(m.ctx)
	case message.ErrMsg:
		m.msg = msg.Err.Error()
	}
	return m, nil
}

func (m HomePage) View() string {
	var s string
	if name := m.ctx.Session.User().Name; name != "" {
		s = fmt.Sprintf("Hello, %s\n\n", name)
	}
	s += "Where to?\n"

	for i, option := range m.options {
		if i == m.cursor {
			s += "\t" + cursorStyle.Render(option) + "\n"
		} else {
			s += "\t" + option + "\n"
		}
	}

	if m.msg != "" {
		s += "\n" + errorStyle.Render(m.msg) + "\n"
	}

	s += faintStyle.Render("\n'q' or ctrl+c to quit") + "\n"

	return s
}

func meCmd(ctx *Ctx) func() tea.Msg {
	return func() tea.Msg {
		me, err := ctx.API.Me(bg())
		if err != nil {
			return errToMsg(err)
		}
		return message.MeMsg(me)
	}
}

package mvc

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type LoginPage struct {
	email    textinput.Model
	password textinput.Model
	msg      string
	busy     bool

	ctx *Ctx
}

func InitialLoginModel(ctx *Ctx) LoginPage {
	m := LoginPage{ctx: ctx}

	m.email = textinput.New()
	m.email.Placeholder = "Email"
	m.email.Focus()

	m.password = textinput.New()
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword

	return m
}

func (m LoginPage) Init() tea.Cmd {
	return nil
}

func (m LoginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		emailCmd tea.Cmd
		passCmd  tea.Cmd
	)
	m.email, emailCmd = m.email.Update(msg)
	m.password, passCmd = m.password.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.email.Blur()
			m.password.Focus()
		case "up", "shift+tab":
			m.password.Blur()
			m.email.Focus()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			return InitialRegisterModel(m.ctx), nil
		case "enter":
			if m.busy {
				break
			}
			creds := model.Credentials{
				Email:    m.email.Value(),
				Password: m.password.Value(),
			}
			if errs := m.ctx.Val.Struct(creds); len(errs) > 0 {
				m.msg = errs[0].Error()
				break
			}
			m.busy = true
			m.msg = ""
			return m, loginCmd(m.ctx, creds)
		}
	case message.LoggedInMsg:
		if err := m.ctx.Session.SetToken(msg.Token); err != nil {
			m.ctx.Log.Warnw("persisting token", "error", err)
		}
		m.ctx.Session.SetUser(msg.User)
		home := InitialHomeModel(m.ctx)
		return home, home.Init()
	case message.ErrMsg:
		m.busy = false
		m.msg = msg.Err.Error()
	case message.AuthExpiredMsg:
		m.busy = false
		m.msg = "invalid email or password"
	}

	return m, tea.Batch(emailCmd, passCmd)
}

func (m LoginPage) View() string {
	s := titleStyle.Render("Login") + "\n\n"

	s += m.email.View() + "\n"
	s += m.password.View() + "\n\n"

	if m.busy {
		s += "Signing in...\n"
	}
	if m.msg != "" {
		s += errorStyle.Render(m.msg) + "\n"
	}

	s += faintStyle.Render("\nenter to sign in · ctrl+r to register · ctrl+c to quit") + "\n"

	return s
}

func loginCmd(ctx *Ctx, creds model.Credentials) func() tea.Msg {
	return func() tea.Msg {
		res, err := ctx.API.Login(bg(), creds)
		if err != nil {
			return errToMsg(err)
		}
		user := res.User
		if user.ID == "" {
			// Some deployments return only the token; resolve the user
			// with a follow-up call.
			me, err := meWithToken(ctx, res.Token)
			if err != nil {
				return errToMsg(err)
			}
			user = me
		}
		return message.LoggedInMsg{Token: res.Token, User: user}
	}
}

func meWithToken(ctx *Ctx, token string) (model.User, error) {
	if err := ctx.Session.SetToken(token); err != nil {
		return model.User{}, fmt.Errorf("persisting token: %w", err)
	}
	return ctx.API.Me(bg())
}

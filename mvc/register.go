package mvc

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/model"
)

type RegisterPage struct {
	fields  []textinput.Model
	focused int
	msg     string
	busy    bool

	ctx *Ctx
}

const (
	regFieldName = iota
	regFieldEmail
	regFieldPassword
	regFieldConfirm
)

func InitialRegisterModel(ctx *Ctx) RegisterPage {
	m := RegisterPage{ctx: ctx}

	placeholders := []string{"Name", "Email", "Password", "Confirm password"}
	m.fields = make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = p
		if i >= regFieldPassword {
			m.fields[i].EchoMode = textinput.EchoPassword
		}
	}
	m.fields[regFieldName].Focus()

	return m
}

func (m RegisterPage) Init() tea.Cmd {
	return nil
}

func (m RegisterPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		m.fields[i], cmds[i] = m.fields[i].Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.focus(m.focused + 1)
		case "up", "shift+tab":
			m.focus(m.focused - 1)
		case "ctrl+c":
			return m, tea.Quit
		case "left":
			return InitialLoginModel(m.ctx), nil
		case "enter":
			if m.busy {
				break
			}
			reg := model.Registration{
				Name:            m.fields[regFieldName].Value(),
				Email:           m.fields[regFieldEmail].Value(),
				Password:        m.fields[regFieldPassword].Value(),
				ConfirmPassword: m.fields[regFieldConfirm].Value(),
			}
			if errs := m.ctx.Val.Struct(reg); len(errs) > 0 {
				m.msg = errs[0].Error()
				break
			}
			m.busy = true
			m.msg = ""
			return m, registerCmd(m.ctx, reg)
		}
	case message.RegisteredMsg:
		login := InitialLoginModel(m.ctx)
		login.msg = "account created, sign in"
		return login, nil
	case message.ErrMsg:
		m.busy = false
		m.msg = msg.Err.Error()
	}

	return m, tea.Batch(cmds...)
}

func (m *RegisterPage) focus(i int) {
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.fields[m.focused].Blur()
	m.focused = i
	m.fields[m.focused].Focus()
}

func (m RegisterPage) View() string {
	s := titleStyle.Render("Create account") + "\n\n"

	for _, f := range m.fields {
		s += f.View() + "\n"
	}
	s += "\n"

	if m.busy {
		s += "Creating account...\n"
	}
	if m.msg != "" {
		s += errorStyle.Render(m.msg) + "\n"
	}

	s += faintStyle.Render("\nenter to register · left to go back") + "\n"

	return s
}

func registerCmd(ctx *Ctx, reg model.Registration) func() tea.Msg {
	return func() tea.Msg {
		if _, err := ctx.API.Register(bg(), reg); err != nil {
			return errToMsg(err)
		}
		return message.RegisteredMsg{}
	}
}

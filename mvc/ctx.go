package mvc

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fazhza18-web/japanese-game-code/api"
	"github.com/fazhza18-web/japanese-game-code/message"
	"github.com/fazhza18-web/japanese-game-code/session"
	"github.com/fazhza18-web/japanese-game-code/validate"
)

// Ctx is the shared wiring every screen receives: the API gateway, the
// session store, the form validator and the logger. Screens pass it along
// when they construct the next screen, so nothing lives in a global.
type Ctx struct {
	API     *api.Client
	Session *session.Store
	Val     *validate.Validator
	Log     *zap.SugaredLogger
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FFF"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f55"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// errToMsg turns a gateway error into the message every screen understands:
// a rejected token forces re-authentication, anything else becomes a banner.
func errToMsg(err error) tea.Msg {
	if errors.Is(err, api.ErrUnauthorized) {
		return message.AuthExpiredMsg{}
	}
	return message.ErrMsg{Err: err}
}

// expireSession clears the stored token and hands control to the login
// screen. Shared by every screen's AuthExpiredMsg case.
func expireSession(ctx *Ctx) (tea.Model, tea.Cmd) {
	if err := ctx.Session.Clear(); err != nil {
		ctx.Log.Warnw("clearing session", "error", err)
	}
	return InitialLoginModel(ctx), nil
}

func bg() context.Context {
	return context.Background()
}

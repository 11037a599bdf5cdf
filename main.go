package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fazhza18-web/japanese-game-code/api"
	"github.com/fazhza18-web/japanese-game-code/config"
	"github.com/fazhza18-web/japanese-game-code/logger"
	"github.com/fazhza18-web/japanese-game-code/mvc"
	"github.com/fazhza18-web/japanese-game-code/session"
	"github.com/fazhza18-web/japanese-game-code/validate"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading config:", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.File)
	defer logger.Log.Sync()

	sess := session.New(cfg.Session.TokenFile)
	if err := sess.Load(); err != nil {
		logger.Log.Warnw("restoring session", "error", err)
	}

	ctx := &mvc.Ctx{
		API:     api.New(cfg.API.BaseURL, sess.Token, logger.Log),
		Session: sess,
		Val:     validate.New(),
		Log:     logger.Log,
	}

	// A restored token goes straight to the home menu; the token is
	// verified lazily by the first request.
	var root tea.Model
	if sess.LoggedIn() {
		root = mvc.InitialHomeModel(ctx)
	} else {
		root = mvc.InitialLoginModel(ctx)
	}

	logger.Log.Infow("starting", "api", cfg.API.BaseURL)
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		logger.Log.Errorw("program exited", "error", err)
		os.Exit(1)
	}
}

package middleware

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"github.com/trustnet/trustnet/auth"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/session"
	"github.com/trustnet/trustnet/ui"
	"github.com/trustnet/trustnet/util"
)

func MainTui(conf *util.AppConfig) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {

		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		// Every public key gets its own persisted session, so reconnecting
		// drops the client back where it left off.
		scope := util.PkToHash(util.PublicKeyToString(s.PublicKey()))
		store := db.GetDB()
		controller := session.NewController(store, scope)
		client := auth.NewClient(conf.ApiBaseUrlOrDefault(), store, scope)

		m := ui.NewModel(controller, client, pty.Window.Width, pty.Window.Height)
		return tea.NewProgram(m, tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}

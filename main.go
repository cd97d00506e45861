package main

import (
	"context"
	"fmt"
	"github.com/charmbracelet/ssh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/trustnet/trustnet/auth"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/middleware"
	"github.com/trustnet/trustnet/session"
	"github.com/trustnet/trustnet/ui"
	"github.com/trustnet/trustnet/util"
	"github.com/trustnet/trustnet/web"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/wish"
)

func main() {

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("Configuration: ")
	fmt.Println(util.PrettyPrint(conf))

	// Opens the database and seeds sample content on first run
	db.GetDB()

	if conf.Conf.WithStub {
		go func() {
			if err := web.Router(conf); err != nil {
				log.Fatalln(err)
			}
		}()
	}

	if !conf.Conf.WithSsh {
		runLocal(conf)
		return
	}

	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%d", conf.Conf.Host, conf.Conf.SshPort)),
		wish.WithHostKeyPath(".ssh/hostkey"),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			middleware.MainTui(conf),
			middleware.AuthMiddleware(),
			logging.Middleware(), // last middleware executed first
		),
	)
	if err != nil {
		log.Fatalln(err)
	}

	startServing(s, conf)
}

// runLocal attaches the TUI to the current terminal instead of serving it
// over SSH. Session state is kept under a single shared scope.
func runLocal(conf *util.AppConfig) {
	store := db.GetDB()
	controller := session.NewController(store, session.LocalScope)
	client := auth.NewClient(conf.ApiBaseUrlOrDefault(), store, session.LocalScope)

	m := ui.NewModel(controller, client, 120, 40)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalln(err)
	}
}

func startServing(s *ssh.Server, conf *util.AppConfig) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Printf("Starting SSH server on %s:%d", conf.Conf.Host, conf.Conf.SshPort)
	go func() {
		if err := s.ListenAndServe(); err != nil {
			log.Fatalln(err)
		}
	}()

	<-done
	log.Println("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer func() { cancel() }()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatalln(err)
	}
}

func publicKeyHandler(ssh.Context, ssh.PublicKey) bool {
	return true
}

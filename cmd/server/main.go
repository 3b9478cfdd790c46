package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/internal/config"
	"github.com/JanBanasik/PokerGame/internal/mux"
	"github.com/JanBanasik/PokerGame/pkg/playable"
	"github.com/JanBanasik/PokerGame/pkg/room"
	"github.com/JanBanasik/PokerGame/pkg/room/gamefactory"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the game listen address (overrides configuration)")
var httpAddr = flag.String("http-addr", "", "the HTTP listen address (overrides configuration)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	tcpAddress := cfg.TCPAddress
	if *addr != "" {
		tcpAddress = *addr
	}

	httpAddress := cfg.HTTPAddress
	if *httpAddr != "" {
		httpAddress = *httpAddr
	}

	logger := logrus.StandardLogger()
	table := room.NewTable(logger)

	factory, err := gamefactory.Get(cfg.Game.Name)
	if err != nil {
		logrus.WithError(err).Fatal("unknown game")
	}

	game, err := factory.CreateGame(logger, table, playable.AdditionalData{
		"maxPlayers": cfg.Game.MaxPlayers,
		"ante":       cfg.Game.Ante,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not create game")
	}

	table.HostGame(game)
	table.Start()

	server := room.NewServer(logger, table)
	if err := server.Listen(tcpAddress); err != nil {
		logrus.WithError(err).Fatal("could not start game server")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         httpAddress,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, table))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

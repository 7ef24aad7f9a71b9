package app

import (
	"context"
	"io"
	"os"
	"time"

	router "packetirc/internal/app/adapters/http"
	"packetirc/internal/app/adapters/irc"
	"packetirc/internal/app/adapters/terminal"
	"packetirc/internal/app/domain/banwords"
	"packetirc/internal/app/domain/session"
	"packetirc/internal/app/infrastructure/config"
	"packetirc/internal/app/infrastructure/storage"
	"packetirc/internal/app/ports"
	"packetirc/pkg/logger"
)

const configPath = "config.json"

const version = "1.1.0"

const (
	// replyCacheTTL keeps WHOIS and LIST replies answerable locally for a
	// while; stale directory data beats a 1200 baud round trip.
	replyCacheTTL = 10 * time.Minute
)

// New wires the whole client together and runs the session to
// completion. callsign is the operator identity handed over by the
// packet switch on the first input line; input is the rest of that
// stream.
func New(callsign string, input io.Reader) error {
	manager, err := config.New(configPath)
	if err != nil {
		return err
	}
	cfg := manager.Get()

	log := logger.New(cfg.App.LogFile)
	log.SetLogLevel(cfg.App.LogLevel)
	plog := logger.NewPrefixedLogger(log, callsign)
	plog.Info("Client starting", "version", version)

	out := terminal.NewPrinter(os.Stdout)
	in := terminal.NewInput(plog, input)

	var filter ports.FilterPort
	if cfg.Filter.Enabled {
		filter = banwords.Load(plog, cfg.Filter.WordsFile)
	} else {
		filter = banwords.New(nil)
	}

	whoisCache := storage.NewCache[[]string](16, replyCacheTTL)
	listCache := storage.NewCache[[]string](4, replyCacheTTL)

	chat := irc.New(plog, manager, callsign)
	chat.OnRetry = func(attempt int, err error) {
		plog.Warn("Connection attempt failed", "attempt", attempt, "error", err)
		out.Printf("** Connection attempt %d failed, retrying...", attempt)
	}

	if cfg.API.Enabled {
		go func() {
			if err := router.NewRouter(plog, manager).Run(); err != nil {
				plog.Error("Diagnostics endpoint stopped", err)
			}
		}()
	}

	out.Printf("PacketIRC v%s", version)
	if msg := cfg.Client.WelcomeMessage; msg != "" {
		out.Print(msg)
	}

	runner := session.NewRunner(plog, manager, chat, out, filter, in, whoisCache, listCache, callsign)
	return runner.Run(context.Background())
}

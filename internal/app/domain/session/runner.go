package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"packetirc/internal/app/adapters/metrics"
	"packetirc/internal/app/domain/command"
	"packetirc/internal/app/domain/ircmsg"
	"packetirc/internal/app/infrastructure/config"
	"packetirc/internal/app/ports"
	"packetirc/pkg/logger"
)

const (
	// pollInterval bounds how long each loop tick blocks on the server
	// before checking operator input and the keepalive clock.
	pollInterval = 200 * time.Millisecond

	// inputJoinTimeout bounds the wait for the input reader at shutdown.
	// A reader stuck inside a blocking read is abandoned, not waited on.
	inputJoinTimeout = 5 * time.Second

	listCacheKey = "channels"
)

// Runner is the session loop: the single goroutine that owns client
// state, consumes both the server stream and operator input, and decides
// when the session ends. Everything else only feeds it.
type Runner struct {
	log     logger.Logger
	manager *config.Manager

	chat   ports.ChatPort
	out    ports.OutputPort
	filter ports.FilterPort
	input  ports.InputPort

	st     *State
	routes map[string]handlerFunc

	// names accumulates 353 replies per channel until 366 flushes them.
	names map[string][]string

	// reply caches answer repeat /whois and /list queries locally instead
	// of going back over the air.
	whoisCache  ports.CachePort[[]string]
	listCache   ports.CachePort[[]string]
	listPending []string

	callsign     string
	nickAttempts int
	quitReason   string
	inputClosed  bool
	start        time.Time
}

func NewRunner(log logger.Logger, manager *config.Manager, chat ports.ChatPort, out ports.OutputPort, filter ports.FilterPort, input ports.InputPort, whoisCache, listCache ports.CachePort[[]string], callsign string) *Runner {
	r := &Runner{
		log:        log,
		manager:    manager,
		chat:       chat,
		out:        out,
		filter:     filter,
		input:      input,
		st:         NewState(callsign),
		names:      make(map[string][]string),
		whoisCache: whoisCache,
		listCache:  listCache,
		callsign:   callsign,
		quitReason: "73",
		start:      time.Now(),
	}
	r.routes = r.handlers()

	return r
}

// Run connects, then alternates between the server stream and the
// operator input queue until the session terminates. It returns a
// non-nil error only when the initial connection never came up.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.manager.Get()

	r.st.SetStatus(StatusConnecting)
	switch {
	case cfg.Client.HideServer:
		r.out.Print("** Connecting...")
	case cfg.Server.UseWebsocket:
		r.out.Printf("** Connecting to %s...", cfg.Server.WebsocketURL)
	default:
		r.out.Printf("** Connecting to %s:%d...", cfg.Server.Address, cfg.Server.Port)
	}

	if err := r.chat.Connect(ctx); err != nil {
		r.st.SetStatus(StatusDisconnected)
		r.out.Print("** Unable to connect to the server.")
		r.out.Print("** Please try again later, exiting.")
		return err
	}

	r.input.Start()

	for r.st.Status() != StatusTerminating {
		if ctx.Err() != nil {
			r.st.SetStatus(StatusTerminating)
			break
		}

		msg, err := r.chat.Receive(pollInterval)
		switch {
		case err == nil:
			r.dispatch(msg)
		case errors.Is(err, ports.ErrPollTimeout):
			// quiet tick
		case errors.Is(err, ports.ErrMalformed):
			r.log.Warn("Dropped malformed line", "error", err)
		default:
			r.linkFailed(err)
		}

		r.drainInput()
		r.chat.MaybeKeepalive()
	}

	r.shutdown()

	return nil
}

// drainInput consumes every queued operator line without blocking. A
// closed channel means the terminal hit EOF, which ends the session the
// same way /quit does.
func (r *Runner) drainInput() {
	if r.inputClosed {
		return
	}
	for {
		select {
		case line, ok := <-r.input.Lines():
			if !ok {
				r.inputClosed = true
				r.st.SetStatus(StatusTerminating)
				return
			}
			r.handleInput(line)
			if r.st.Status() == StatusTerminating {
				return
			}
		default:
			return
		}
	}
}

func (r *Runner) handleInput(line string) {
	// a bad input line must never take the session down
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Input handling panicked", fmt.Errorf("%v", p), "line", line)
		}
	}()

	r.log.Info("Operator input", "callsign", r.callsign, "line", line)

	act := command.Interpret(line, r.st.Channel())
	if act.Filtered() && !r.filter.Empty() {
		act.Text = r.filter.Filter(act.Text)
	}
	r.perform(act)
}

func (r *Runner) perform(act command.Action) {
	switch act.Kind {
	case command.SendMessage, command.PrivMsg:
		// no local echo: the packet switch already echoes typed text
		r.send(ircmsg.New("PRIVMSG", act.Target, act.Text))

	case command.Join:
		if cur := r.st.Channel(); cur != "" && cur != act.Target {
			r.send(ircmsg.New("PART", cur, "Switching to "+act.Target))
		}
		r.send(ircmsg.New("JOIN", act.Target))

	case command.Part:
		r.send(ircmsg.New("PART", act.Target, act.Text))

	case command.Quit:
		r.quitReason = act.Text
		r.st.SetStatus(StatusTerminating)

	case command.Nick:
		r.send(ircmsg.New("NICK", act.Target))

	case command.List:
		if lines, ok := r.listCache.Get(listCacheKey); ok {
			metrics.CacheHits.WithLabelValues("list").Inc()
			for _, line := range lines {
				r.out.Print(line)
			}
			return
		}
		r.send(ircmsg.New("LIST"))

	case command.Topic:
		r.send(ircmsg.New("TOPIC", act.Target, act.Text))

	case command.TopicQuery:
		r.send(ircmsg.New("TOPIC", act.Target))

	case command.Away:
		r.send(ircmsg.New("AWAY", act.Text))

	case command.Emote:
		r.send(ircmsg.New("PRIVMSG", act.Target, "\x01ACTION "+act.Text+"\x01"))

	case command.Whois:
		if lines, ok := r.whoisCache.Get(strings.ToLower(act.Target)); ok {
			metrics.CacheHits.WithLabelValues("whois").Inc()
			for _, line := range lines {
				r.out.Print(line)
			}
			return
		}
		r.send(ircmsg.New("WHOIS", act.Target))

	case command.Names:
		r.send(ircmsg.New("NAMES", act.Target))

	case command.Status:
		r.printStatus()

	case command.Help:
		r.out.Print(r.manager.Get().Client.HelpText)

	case command.PrintUsage, command.PrintError:
		r.out.Print(act.Text)

	case command.LinkLost:
		r.log.Warn("Link-level disconnect reported by the switch")
		r.st.SetStatus(StatusTerminating)
	}
}

// printStatus renders local client state. Nothing here touches the wire.
func (r *Runner) printStatus() {
	r.out.Printf("** Status: %s", r.st.Status())
	r.out.Printf("   Nick: %s", r.st.Nick())

	channel := r.st.Channel()
	if channel == "" {
		channel = "(none)"
	}
	r.out.Printf("   Channel: %s", channel)
	r.out.Printf("   Uptime: %s", time.Since(r.start).Round(time.Second))

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		r.out.Printf("   CPU: %.1f%%", pct[0])
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	r.out.Printf("   Mem: %.1f MB", float64(ms.Alloc)/1024/1024)
}

func (r *Runner) send(msg ircmsg.Message) {
	err := r.chat.Send(msg)
	if err == nil {
		return
	}
	// an encoding failure is the operator's problem, not the link's
	if errors.Is(err, ircmsg.ErrLineTooLong) {
		r.out.Print("** Message too long, not sent.")
		return
	}
	r.linkFailed(err)
}

// linkFailed ends the session on an unrecoverable link error. Repeated
// failures during teardown stay out of the operator's face.
func (r *Runner) linkFailed(err error) {
	if r.st.Status() == StatusTerminating {
		return
	}
	r.log.Error("Lost connection", err)
	r.out.Print("** Lost connection to the server.")
	r.st.SetStatus(StatusTerminating)
}

func (r *Runner) shutdown() {
	r.chat.Disconnect(r.quitReason)
	r.st.SetStatus(StatusDisconnected)

	if !r.inputClosed {
		select {
		case <-r.input.Stop():
		case <-time.After(inputJoinTimeout):
			r.log.Warn("Input reader did not stop in time, abandoning it")
		}
	}

	r.out.Print("Exiting PacketIRC, 73.")
}

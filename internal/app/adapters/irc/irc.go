package irc

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"packetirc/internal/app/adapters/metrics"
	"packetirc/internal/app/domain/ircmsg"
	"packetirc/internal/app/infrastructure/config"
	"packetirc/internal/app/ports"
	"packetirc/pkg/logger"
)

// ConnectError reports a failed connection phase: how many attempts were
// made and whether the retry budget ran out.
type ConnectError struct {
	Attempts  int
	Exhausted bool
	Err       error
}

func (e *ConnectError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("connect failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("connect attempt %d failed: %v", e.Attempts, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// baseCallRe strips the SSID from a callsign; the base call is used for the
// ident/realname fields since some servers choke on the dash.
var baseCallRe = regexp.MustCompile(`^[A-Za-z0-9]+`)

// Client owns the single link to the chat server: dialing with retries,
// registration, rate-limited writes, deadline-bounded reads and the idle
// keepalive. It is driven by exactly one goroutine (the session loop).
type Client struct {
	log     logger.Logger
	manager *config.Manager
	nick    string

	// OnRetry, when set, is told about each failed dial before the retry
	// delay elapses. The session uses it to keep the operator informed.
	OnRetry func(attempt int, err error)

	limiter *rate.Limiter
	dialFn  func() (transport, error)

	mu          sync.Mutex
	tr          transport
	connected   bool
	closed      bool
	keepaliveOn bool
	lastSend    time.Time
	keepalive   time.Duration
}

func New(log logger.Logger, manager *config.Manager, nick string) *Client {
	cfg := manager.Get()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Limiter.Messages > 0 && cfg.Limiter.PerSeconds > 0 {
		per := time.Duration(cfg.Limiter.PerSeconds) * time.Second
		limiter = rate.NewLimiter(rate.Every(per/time.Duration(cfg.Limiter.Messages)), cfg.Limiter.Messages)
	}

	c := &Client{
		log:       log,
		manager:   manager,
		nick:      nick,
		limiter:   limiter,
		keepalive: time.Duration(cfg.Client.KeepaliveSeconds) * time.Second,
	}
	c.dialFn = c.dial
	return c
}

func (c *Client) dial() (transport, error) {
	cfg := c.manager.Get()
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	if cfg.Server.UseWebsocket {
		return dialWS(cfg.Server.WebsocketURL, timeout)
	}
	return dialTCP(fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port), timeout)
}

// Connect dials the server, retrying with a fixed delay up to the
// configured maximum, then registers the client. A nil return means the
// registration commands are on the wire; the welcome reply arrives through
// Receive like any other event.
func (c *Client) Connect(ctx context.Context) error {
	cfg := c.manager.Get()
	retryDelay := time.Duration(cfg.Client.RetryDelaySeconds) * time.Second

	var lastErr error
	for attempt := 1; attempt <= cfg.Client.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		metrics.ConnectAttempts.Inc()
		tr, err := c.dialFn()
		if err == nil {
			c.mu.Lock()
			c.tr = tr
			c.connected = true
			c.closed = false
			c.keepaliveOn = false
			c.lastSend = time.Now()
			c.mu.Unlock()

			c.log.Info("Connected to server", "remote", tr.RemoteAddr(), "attempt", attempt)
			return c.register(cfg)
		}

		lastErr = err
		c.log.Error("Error connecting to server", err, "attempt", attempt, "max", cfg.Client.MaxRetries)
		if c.OnRetry != nil {
			c.OnRetry(attempt, err)
		}

		if attempt < cfg.Client.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	return &ConnectError{Attempts: cfg.Client.MaxRetries, Exhausted: true, Err: lastErr}
}

func (c *Client) register(cfg *config.Config) error {
	baseCall := baseCallRe.FindString(c.nick)
	if baseCall == "" {
		baseCall = c.nick
	}

	if cfg.Server.Password != "" {
		if err := c.Send(ircmsg.New("PASS", cfg.Server.Password)); err != nil {
			return err
		}
	}
	if err := c.Send(ircmsg.New("NICK", c.nick)); err != nil {
		return err
	}
	return c.Send(ircmsg.New("USER", baseCall, "0", "*", baseCall))
}

// Send serializes and writes one message, paced by the outbound limiter.
// Keepalive probes bypass the limiter; they exist to keep the link up, not
// to compete with operator traffic.
func (c *Client) Send(msg ircmsg.Message) error {
	line, err := msg.Line()
	if err != nil {
		return err
	}

	_ = c.limiter.Wait(context.Background())
	return c.writeLine(line)
}

func (c *Client) writeLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.tr == nil {
		return ports.ErrNotConnected
	}

	n, err := c.tr.WriteLine(line)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	c.lastSend = time.Now()
	metrics.LinesSent.Inc()
	metrics.BytesSent.Add(float64(n))
	return nil
}

// Receive reads one message, waiting at most timeout. Malformed lines
// come back as ErrMalformed (wrapped with the offending text) so the
// caller can log and drop them without ever crashing the dispatch loop.
func (c *Client) Receive(timeout time.Duration) (ircmsg.Message, error) {
	c.mu.Lock()
	tr := c.tr
	connected := c.connected
	c.mu.Unlock()

	if !connected || tr == nil {
		return ircmsg.Message{}, ports.ErrNotConnected
	}

	line, err := tr.ReadLine(time.Now().Add(timeout))
	if err != nil {
		return ircmsg.Message{}, err
	}

	metrics.LinesReceived.Inc()
	msg, err := ircmsg.ParseLine(line)
	if err != nil {
		metrics.ParseErrors.Inc()
		return ircmsg.Message{}, fmt.Errorf("%w: %q: %v", ports.ErrMalformed, line, err)
	}
	return msg, nil
}

// StartKeepalive arms the idle probe. Called once the server has
// acknowledged registration; an unregistered link is never probed.
func (c *Client) StartKeepalive() {
	c.mu.Lock()
	c.keepaliveOn = true
	c.lastSend = time.Now()
	c.mu.Unlock()
}

// MaybeKeepalive sends a PING when nothing has been written for the
// keepalive interval. Checked opportunistically on every poll tick; no
// dedicated timer goroutine.
func (c *Client) MaybeKeepalive() {
	c.mu.Lock()
	idle := c.connected && c.keepaliveOn && time.Since(c.lastSend) >= c.keepalive
	c.mu.Unlock()

	if !idle {
		return
	}

	probe := ircmsg.New("PING", strconv.FormatInt(time.Now().Unix(), 10))
	line, err := probe.Line()
	if err != nil {
		return
	}
	if err := c.writeLine(line); err != nil {
		c.log.Error("Keepalive send failed", err)
		return
	}
	metrics.KeepalivesSent.Inc()
}

// Disconnect sends a graceful QUIT and closes the transport. Safe to call
// more than once; every call after the first is a no-op.
func (c *Client) Disconnect(reason string) {
	c.mu.Lock()
	if c.closed || c.tr == nil {
		c.mu.Unlock()
		return
	}
	c.closed = true
	tr := c.tr
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		if line, err := ircmsg.New("QUIT", reason).Line(); err == nil {
			if _, err := tr.WriteLine(line); err != nil {
				c.log.Debug("QUIT write failed", "error", err.Error())
			}
		}
	}
	if err := tr.Close(); err != nil {
		c.log.Debug("Transport close failed", "error", err.Error())
	}
	c.log.Info("Disconnected from server", "reason", reason)
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

package session

import (
	"fmt"
	"math/rand"
	"strings"

	"packetirc/internal/app/adapters/metrics"
	"packetirc/internal/app/domain/ircmsg"
)

type handlerFunc func(msg ircmsg.Message)

// handlers is the single routing table from command token (word or numeric
// reply code) to handler. New events are added by registering here, never
// by subclassing anything.
func (r *Runner) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"PING":    r.onPing,
		"JOIN":    r.onJoin,
		"PART":    r.onPart,
		"QUIT":    r.onQuit,
		"NICK":    r.onNick,
		"PRIVMSG": r.onPrivmsg,
		"NOTICE":  r.onNotice,
		"TOPIC":   r.onTopicChange,
		"ERROR":   r.onError,

		ircmsg.RplWelcome:           r.onWelcome,
		ircmsg.RplWhoisUser:         r.onWhoisUser,
		ircmsg.RplListStart:         r.onListStart,
		ircmsg.RplList:              r.onList,
		ircmsg.RplListEnd:           r.onListEnd,
		ircmsg.RplTopic:             r.onCurrentTopic,
		ircmsg.RplNamReply:          r.onNamReply,
		ircmsg.RplEndOfNames:        r.onEndOfNames,
		ircmsg.RplMotd:              r.onMotd,
		ircmsg.RplMotdStart:         r.onMotdStart,
		ircmsg.RplEndOfMotd:         r.onEndOfMotd,
		ircmsg.ErrNicknameInUse:     r.onNicknameInUse,
		ircmsg.ErrChanOpPrivsNeeded: r.onTopicProtected,
	}
}

// dispatch routes one inbound message. Anything without a handler is
// logged and swallowed: protocol diagnostics must never leak onto the
// air.
func (r *Runner) dispatch(msg ircmsg.Message) {
	h, ok := r.routes[msg.Command]
	if !ok {
		// routine unhandled reply codes are far more common than unknown
		// word commands, keep them at trace
		if msg.IsNumeric() {
			r.log.Trace("Unhandled reply code", "command", msg.Command, "params", strings.Join(msg.Params, " "))
		} else {
			r.log.Debug("Unhandled protocol event", "command", msg.Command, "params", strings.Join(msg.Params, " "))
		}
		return
	}
	metrics.EventsDispatched.WithLabelValues(msg.Command).Inc()
	h(msg)
}

func (r *Runner) onPing(msg ircmsg.Message) {
	if err := r.chat.Send(ircmsg.New("PONG", msg.Trailing())); err != nil {
		r.linkFailed(err)
	}
}

func (r *Runner) onWelcome(msg ircmsg.Message) {
	r.st.SetStatus(StatusConnected)
	r.chat.StartKeepalive()

	server := msg.Prefix
	if r.manager.Get().Client.HideServer || server == "" {
		r.out.Print("** Connected.")
	} else {
		r.out.Printf("** Connected to %s", server)
	}

	if ch := r.manager.Get().Client.Channel; ch != "" {
		r.send(ircmsg.New("JOIN", ch))
	}
}

// onNicknameInUse picks a new candidate by tacking a random numeric
// suffix onto the callsign and retries, up to a configured cap. A server
// that rejects every candidate gets treated as a failed connection
// rather than an infinite loop.
func (r *Runner) onNicknameInUse(ircmsg.Message) {
	r.nickAttempts++
	if r.nickAttempts > r.manager.Get().Client.NickRetryLimit {
		r.log.Error("Nickname retries exhausted", nil, "attempts", r.nickAttempts)
		r.out.Print("** Unable to register a nickname, exiting.")
		r.st.SetStatus(StatusTerminating)
		return
	}

	candidate := fmt.Sprintf("%s_%d", r.callsign, rand.Intn(1000))
	r.st.SetNick(candidate)
	r.send(ircmsg.New("NICK", candidate))
}

func (r *Runner) onJoin(msg ircmsg.Message) {
	channel := msg.Param(0)
	if channel == "" {
		channel = msg.Trailing()
	}

	if msg.Nick() == r.st.Nick() {
		r.st.SetChannel(channel)
		r.out.Printf("** Joined %s", channel)
		r.send(ircmsg.New("TOPIC", channel))
		return
	}
	r.out.Printf("* %s has joined %s", msg.Nick(), channel)
}

func (r *Runner) onPart(msg ircmsg.Message) {
	channel := msg.Param(0)
	reason := msg.Param(1)

	if msg.Nick() == r.st.Nick() {
		if channel == r.st.Channel() {
			r.st.ClearChannel()
		}
		r.out.Printf("** Left %s", channel)
		return
	}
	r.out.Printf("* %s has left %s (%s)", msg.Nick(), channel, reason)
}

func (r *Runner) onQuit(msg ircmsg.Message) {
	r.out.Printf("* %s has quit (%s)", msg.Nick(), msg.Trailing())
}

func (r *Runner) onNick(msg ircmsg.Message) {
	newNick := msg.Param(0)
	if newNick == "" {
		newNick = msg.Trailing()
	}

	if msg.Nick() == r.st.Nick() {
		r.st.SetNick(newNick)
		r.out.Printf("** You are now known as %s", newNick)
		return
	}
	r.out.Printf("* %s is now known as %s", msg.Nick(), newNick)
}

func (r *Runner) onPrivmsg(msg ircmsg.Message) {
	target := msg.Param(0)
	text := msg.Trailing()

	// emote convention: \x01ACTION <text>\x01
	if strings.HasPrefix(text, "\x01ACTION ") && strings.HasSuffix(text, "\x01") {
		r.out.Printf("* %s %s", msg.Nick(), strings.TrimSuffix(strings.TrimPrefix(text, "\x01ACTION "), "\x01"))
		return
	}

	if target == r.st.Nick() {
		r.out.Printf("** %s: %s", msg.Nick(), text)
		return
	}
	r.out.Printf("<%s> %s", msg.Nick(), text)
}

func (r *Runner) onNotice(msg ircmsg.Message) {
	source := msg.Nick()
	if source == "" {
		source = "SERVER"
	}
	r.out.Printf("-%s- %s", source, msg.Trailing())
}

func (r *Runner) onTopicChange(msg ircmsg.Message) {
	r.out.Printf("* %s changed the topic to: %s", msg.Nick(), msg.Trailing())
}

func (r *Runner) onTopicProtected(ircmsg.Message) {
	r.out.Print("** You don't have permission to change the topic.")
}

func (r *Runner) onCurrentTopic(msg ircmsg.Message) {
	r.out.Printf("** %s: %s", msg.Param(1), msg.Trailing())
}

func (r *Runner) onNamReply(msg ircmsg.Message) {
	// params: me, channel symbol, channel, space-separated names
	channel := msg.Param(2)
	r.names[channel] = append(r.names[channel], strings.Fields(msg.Trailing())...)
}

func (r *Runner) onEndOfNames(msg ircmsg.Message) {
	channel := msg.Param(1)
	names := r.names[channel]
	delete(r.names, channel)

	r.out.Printf("Users in %s: %s", channel, strings.Join(names, ", "))
}

func (r *Runner) onWhoisUser(msg ircmsg.Message) {
	// params: me, nick, user, host, *, realname
	nick := msg.Param(1)
	lines := []string{
		fmt.Sprintf("** WHOIS for %s", nick),
		fmt.Sprintf("   %s@%s", msg.Param(2), msg.Param(3)),
	}
	// the server field is a placeholder on many servers; only show it
	// when it carries something real
	if server := msg.Param(4); strings.Trim(server, " *") != "" {
		lines = append(lines, fmt.Sprintf("   Server: %s", server))
	}
	lines = append(lines, fmt.Sprintf("   Name: %s", msg.Trailing()))

	r.whoisCache.Set(strings.ToLower(nick), lines)
	for _, line := range lines {
		r.out.Print(line)
	}
}

func (r *Runner) onListStart(ircmsg.Message) {
	r.listPending = r.listPending[:0]
}

func (r *Runner) onList(msg ircmsg.Message) {
	// params: me, channel, user count, topic
	topic := msg.Trailing()
	if runes := []rune(topic); len(runes) > 60 {
		topic = string(runes[:57]) + "..."
	}

	line := fmt.Sprintf("%s [%s] %s", msg.Param(1), msg.Param(2), topic)
	r.listPending = append(r.listPending, line)
	r.out.Print(line)
}

func (r *Runner) onListEnd(ircmsg.Message) {
	if len(r.listPending) > 0 {
		r.listCache.Set(listCacheKey, append([]string(nil), r.listPending...))
		r.listPending = r.listPending[:0]
	}
}

func (r *Runner) onMotdStart(ircmsg.Message) {
	r.out.Print("** Message of the Day")
}

func (r *Runner) onMotd(msg ircmsg.Message) {
	r.out.Print(msg.Trailing())
}

// onEndOfMotd only exists to keep the routine MOTD terminator out of the
// unhandled-event log; there is nothing worth rendering in it.
func (r *Runner) onEndOfMotd(ircmsg.Message) {}

// onError handles the server-side ERROR message, which is terminal by
// protocol definition.
func (r *Runner) onError(msg ircmsg.Message) {
	r.log.Error("Server error", nil, "text", msg.Trailing())
	r.out.Print("** Disconnected.")
	r.st.SetStatus(StatusTerminating)
}

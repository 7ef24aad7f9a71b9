package session

import "packetirc/internal/app/adapters/metrics"

type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusTerminating
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusTerminating:
		return "terminating"
	}
	return "disconnected"
}

// State is the client's view of itself: nickname, the single current
// channel and the connection status. It is owned by the session loop and
// mutated from exactly one goroutine; no locking by construction.
type State struct {
	nick    string
	channel string
	status  Status
}

func NewState(nick string) *State {
	return &State{nick: nick}
}

func (s *State) Nick() string {
	return s.nick
}

func (s *State) SetNick(nick string) {
	s.nick = nick
}

func (s *State) Channel() string {
	return s.channel
}

// SetChannel records a completed join. Joining is single-channel: any
// previous channel is simply replaced.
func (s *State) SetChannel(channel string) {
	s.channel = channel
}

func (s *State) ClearChannel() {
	s.channel = ""
}

func (s *State) Status() Status {
	return s.status
}

func (s *State) SetStatus(status Status) {
	s.status = status
	metrics.ConnectionState.Set(float64(status))
}

package ircmsg

import (
	"errors"
	"strings"
)

// MaxLineLen is the classic wire limit per encoded line, CRLF included.
const MaxLineLen = 512

// maxParams bounds the worst-case parameter count: once fourteen middle
// parameters have been collected, the fifteenth consumes the rest of the
// line verbatim.
const maxParams = 15

var (
	ErrEmptyLine      = errors.New("line is empty")
	ErrMissingCommand = errors.New("line has no command")
	ErrBadChar        = errors.New("line contains NUL, CR or LF")
	ErrLineTooLong    = errors.New("encoded line exceeds 512 bytes")
	ErrBadParam       = errors.New("non-final parameter is empty, contains a space or starts with ':'")
)

// Message is one protocol message: an optional source prefix, a command
// token (word or 3-digit numeric) and its parameters. Only the final
// parameter may contain spaces.
type Message struct {
	Prefix  string
	Command string
	Params  []string
}

func New(command string, params ...string) Message {
	return Message{Command: strings.ToUpper(command), Params: params}
}

// Nick returns the name component of the prefix (nickname or server name).
func (m Message) Nick() string {
	if i := strings.IndexByte(m.Prefix, '!'); i >= 0 {
		return m.Prefix[:i]
	}
	if i := strings.IndexByte(m.Prefix, '@'); i >= 0 {
		return m.Prefix[:i]
	}
	return m.Prefix
}

func (m Message) User() string {
	bang := strings.IndexByte(m.Prefix, '!')
	if bang < 0 {
		return ""
	}
	rest := m.Prefix[bang+1:]
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		return rest[:at]
	}
	return rest
}

func (m Message) Host() string {
	if at := strings.IndexByte(m.Prefix, '@'); at >= 0 {
		return m.Prefix[at+1:]
	}
	return ""
}

// Trailing returns the last parameter, or "" when there are none.
func (m Message) Trailing() string {
	if len(m.Params) > 0 {
		return m.Params[len(m.Params)-1]
	}
	return ""
}

// Param returns parameter i, or "" when the message is shorter than that.
func (m Message) Param(i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

// IsNumeric reports whether the command token is a 3-digit reply code.
func (m Message) IsNumeric() bool {
	if len(m.Command) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if m.Command[i] < '0' || m.Command[i] > '9' {
			return false
		}
	}
	return true
}

func trimInitialSpaces(s string) string {
	var i int
	for i = 0; i < len(s) && s[i] == ' '; i++ {
	}
	return s[i:]
}

// ParseLine frames one incoming line into a Message. The line may still
// carry its terminator; it is stripped before parsing.
func ParseLine(line string) (Message, error) {
	var msg Message

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	if strings.IndexByte(line, '\x00') != -1 || strings.IndexByte(line, '\n') != -1 || strings.IndexByte(line, '\r') != -1 {
		return msg, ErrBadChar
	}
	if len(line) == 0 {
		return msg, ErrEmptyLine
	}

	line = trimInitialSpaces(line)

	if len(line) > 0 && line[0] == ':' {
		end := strings.IndexByte(line, ' ')
		if end == -1 {
			return msg, ErrMissingCommand
		}
		msg.Prefix = line[1:end]
		line = trimInitialSpaces(line[end+1:])
	}

	end := strings.IndexByte(line, ' ')
	paramStart := end + 1
	if end == -1 {
		end = len(line)
		paramStart = len(line)
	}
	msg.Command = strings.ToUpper(line[:end])
	if msg.Command == "" {
		return msg, ErrMissingCommand
	}
	line = line[paramStart:]

	for {
		line = trimInitialSpaces(line)
		if len(line) == 0 {
			break
		}
		if line[0] == ':' {
			msg.Params = append(msg.Params, line[1:])
			break
		}
		if len(msg.Params) == maxParams-1 {
			msg.Params = append(msg.Params, line)
			break
		}
		sp := strings.IndexByte(line, ' ')
		if sp == -1 {
			msg.Params = append(msg.Params, line)
			break
		}
		msg.Params = append(msg.Params, line[:sp])
		line = line[sp+1:]
	}

	return msg, nil
}

// Line serializes the message back to wire format, without the terminator.
// The result round-trips through ParseLine. The encoded form must fit the
// 512-byte limit with CRLF; callers see ErrLineTooLong instead of a
// silently corrupted line.
func (m Message) Line() (string, error) {
	if m.Command == "" {
		return "", ErrMissingCommand
	}

	var b strings.Builder
	if m.Prefix != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(m.Command)

	for i, p := range m.Params {
		last := i == len(m.Params)-1
		if strings.IndexByte(p, '\x00') != -1 || strings.IndexByte(p, '\r') != -1 || strings.IndexByte(p, '\n') != -1 {
			return "", ErrBadChar
		}
		if !last && (p == "" || strings.IndexByte(p, ' ') != -1 || strings.HasPrefix(p, ":")) {
			return "", ErrBadParam
		}
		b.WriteByte(' ')
		if last && (p == "" || strings.IndexByte(p, ' ') != -1 || strings.HasPrefix(p, ":")) {
			b.WriteByte(':')
		}
		b.WriteString(p)
	}

	if b.Len()+2 > MaxLineLen {
		return "", ErrLineTooLong
	}
	return b.String(), nil
}

package ircmsg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Message
		wantErr error
	}{
		{
			name:  "command only",
			input: "LIST",
			want:  Message{Command: "LIST"},
		},
		{
			name:  "command lowercased on the wire",
			input: "ping :12345",
			want:  Message{Command: "PING", Params: []string{"12345"}},
		},
		{
			name:  "privmsg with prefix and trailing",
			input: ":W1AW!ct@radio.example PRIVMSG #Testing :hello from the shack",
			want: Message{
				Prefix:  "W1AW!ct@radio.example",
				Command: "PRIVMSG",
				Params:  []string{"#Testing", "hello from the shack"},
			},
		},
		{
			name:  "crlf terminator stripped",
			input: "PING :abc\r\n",
			want:  Message{Command: "PING", Params: []string{"abc"}},
		},
		{
			name:  "bare lf terminator stripped",
			input: "PING :abc\n",
			want:  Message{Command: "PING", Params: []string{"abc"}},
		},
		{
			name:  "numeric reply",
			input: ":server 001 N0CALL :Welcome to the network",
			want: Message{
				Prefix:  "server",
				Command: "001",
				Params:  []string{"N0CALL", "Welcome to the network"},
			},
		},
		{
			name:  "empty trailing param survives",
			input: "TOPIC #Testing :",
			want:  Message{Command: "TOPIC", Params: []string{"#Testing", ""}},
		},
		{
			name:  "colon inside trailing kept verbatim",
			input: "PRIVMSG #Testing :time is 12:30",
			want:  Message{Command: "PRIVMSG", Params: []string{"#Testing", "time is 12:30"}},
		},
		{
			name:  "extra spaces between params collapse",
			input: "MODE   #Testing   +o   W1AW",
			want:  Message{Command: "MODE", Params: []string{"#Testing", "+o", "W1AW"}},
		},
		{
			name:    "empty line",
			input:   "",
			wantErr: ErrEmptyLine,
		},
		{
			name:    "terminator only",
			input:   "\r\n",
			wantErr: ErrEmptyLine,
		},
		{
			name:    "prefix without command",
			input:   ":server",
			wantErr: ErrMissingCommand,
		},
		{
			name:    "embedded nul",
			input:   "PRIVMSG #a :bad\x00byte",
			wantErr: ErrBadChar,
		},
		{
			name:    "embedded cr mid-line",
			input:   "PRIVMSG #a :inject\rQUIT",
			wantErr: ErrBadChar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_ParamBound(t *testing.T) {
	// the fifteenth parameter takes the remainder of the line verbatim
	words := make([]string, 20)
	for i := range words {
		words[i] = "p"
	}
	msg, err := ParseLine("CMD " + strings.Join(words, " "))

	assert.NoError(t, err)
	assert.Len(t, msg.Params, 15)
	assert.Equal(t, "p p p p p p", msg.Params[14])
}

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		want    string
		wantErr error
	}{
		{
			name: "simple command",
			msg:  New("LIST"),
			want: "LIST",
		},
		{
			name: "trailing with spaces gets the marker",
			msg:  New("PRIVMSG", "#Testing", "hello there"),
			want: "PRIVMSG #Testing :hello there",
		},
		{
			name: "single-word trailing stays bare",
			msg:  New("JOIN", "#Testing"),
			want: "JOIN #Testing",
		},
		{
			name: "empty trailing gets the marker",
			msg:  New("TOPIC", "#Testing", ""),
			want: "TOPIC #Testing :",
		},
		{
			name: "trailing starting with colon gets the marker",
			msg:  New("PRIVMSG", "#Testing", ":-)"),
			want: "PRIVMSG #Testing ::-)",
		},
		{
			name: "prefix serialized",
			msg:  Message{Prefix: "W1AW", Command: "NICK", Params: []string{"W1AW_1"}},
			want: ":W1AW NICK W1AW_1",
		},
		{
			name:    "no command",
			msg:     Message{},
			wantErr: ErrMissingCommand,
		},
		{
			name:    "middle param with space",
			msg:     New("PRIVMSG", "#bad channel", "text"),
			wantErr: ErrBadParam,
		},
		{
			name:    "middle param empty",
			msg:     New("PRIVMSG", "", "text"),
			wantErr: ErrBadParam,
		},
		{
			name:    "param with newline",
			msg:     New("PRIVMSG", "#Testing", "split\nline"),
			wantErr: ErrBadChar,
		},
		{
			name:    "encoded line too long",
			msg:     New("PRIVMSG", "#Testing", strings.Repeat("x", 600)),
			wantErr: ErrLineTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.msg.Line()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLine_RoundTrip(t *testing.T) {
	msgs := []Message{
		New("PRIVMSG", "#Testing", "hello from the shack"),
		New("PING", "1700000000"),
		New("TOPIC", "#Testing", ""),
		New("AWAY", "AFK"),
		{Prefix: "W1AW!ct@host", Command: "PRIVMSG", Params: []string{"N0CALL", "pse k"}},
	}

	for _, msg := range msgs {
		line, err := msg.Line()
		assert.NoError(t, err)

		back, err := ParseLine(line + "\r\n")
		assert.NoError(t, err)
		assert.Equal(t, msg, back)
	}
}

func TestPrefixAccessors(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		nick   string
		user   string
		host   string
	}{
		{"full", "W1AW!ct@radio.example", "W1AW", "ct", "radio.example"},
		{"nick and host", "W1AW@radio.example", "W1AW", "", "radio.example"},
		{"server name", "irc.example.net", "irc.example.net", "", ""},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Prefix: tt.prefix}
			assert.Equal(t, tt.nick, m.Nick())
			assert.Equal(t, tt.user, m.User())
			assert.Equal(t, tt.host, m.Host())
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, Message{Command: "001"}.IsNumeric())
	assert.True(t, Message{Command: "433"}.IsNumeric())
	assert.False(t, Message{Command: "PING"}.IsNumeric())
	assert.False(t, Message{Command: "01"}.IsNumeric())
	assert.False(t, Message{Command: "01A"}.IsNumeric())
}

func TestParam_OutOfRange(t *testing.T) {
	m := New("PRIVMSG", "#Testing", "text")
	assert.Equal(t, "#Testing", m.Param(0))
	assert.Equal(t, "", m.Param(5))
	assert.Equal(t, "", m.Param(-1))
	assert.Equal(t, "text", m.Trailing())
	assert.Equal(t, "", Message{Command: "LIST"}.Trailing())
}

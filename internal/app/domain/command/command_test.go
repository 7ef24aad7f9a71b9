package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		channel string
		want    Action
	}{
		{
			name:    "plain text goes to the current channel",
			line:    "anyone copy this?",
			channel: "#Testing",
			want:    Action{Kind: SendMessage, Target: "#Testing", Text: "anyone copy this?"},
		},
		{
			name: "plain text without a channel",
			line: "hello?",
			want: Action{Kind: PrintError, Text: "** You are not currently in any channel."},
		},
		{
			name: "switch-level disconnect notice",
			line: "*** Disconnected from Stream 10",
			want: Action{Kind: LinkLost},
		},
		{
			name: "quit with default reason",
			line: "/quit",
			want: Action{Kind: Quit, Text: "73"},
		},
		{
			name: "quit with custom reason",
			line: "/quit gone for dinner",
			want: Action{Kind: Quit, Text: "gone for dinner"},
		},
		{
			name: "command name is case insensitive",
			line: "/QUIT",
			want: Action{Kind: Quit, Text: "73"},
		},
		{
			name: "msg with target and text",
			line: "/msg W1AW long path today, inner  spacing kept",
			want: Action{Kind: PrivMsg, Target: "W1AW", Text: "long path today, inner  spacing kept"},
		},
		{
			name: "msg without text",
			line: "/msg W1AW",
			want: Action{Kind: PrintUsage, Text: usage["msg"]},
		},
		{
			name: "msg without anything",
			line: "/msg",
			want: Action{Kind: PrintUsage, Text: usage["msg"]},
		},
		{
			name: "join valid channel",
			line: "/join #packet",
			want: Action{Kind: Join, Target: "#packet"},
		},
		{
			name: "join invalid channel name",
			line: "/join packet",
			want: Action{Kind: PrintError, Text: "** Invalid channel name."},
		},
		{
			name: "join channel with comma rejected",
			line: "/join #a,#b",
			want: Action{Kind: PrintError, Text: "** Invalid channel name."},
		},
		{
			name: "join without argument",
			line: "/join",
			want: Action{Kind: PrintUsage, Text: usage["join"]},
		},
		{
			name:    "part with default reason",
			line:    "/part",
			channel: "#Testing",
			want:    Action{Kind: Part, Target: "#Testing", Text: "Leaving"},
		},
		{
			name:    "part with custom reason",
			line:    "/part back later",
			channel: "#Testing",
			want:    Action{Kind: Part, Target: "#Testing", Text: "back later"},
		},
		{
			name: "part without a channel",
			line: "/part",
			want: Action{Kind: PrintError, Text: "** You are not currently in any channel."},
		},
		{
			name: "nick change",
			line: "/nick N0CALL",
			want: Action{Kind: Nick, Target: "N0CALL"},
		},
		{
			name: "nick without argument",
			line: "/nick",
			want: Action{Kind: PrintUsage, Text: usage["nick"]},
		},
		{
			name: "list",
			line: "/list",
			want: Action{Kind: List},
		},
		{
			name:    "topic query",
			line:    "/topic",
			channel: "#Testing",
			want:    Action{Kind: TopicQuery, Target: "#Testing"},
		},
		{
			name:    "topic set",
			line:    "/topic Net check-ins at 1900",
			channel: "#Testing",
			want:    Action{Kind: Topic, Target: "#Testing", Text: "Net check-ins at 1900"},
		},
		{
			name: "topic without a channel",
			line: "/topic",
			want: Action{Kind: PrintError, Text: "** You are not currently in any channel."},
		},
		{
			name: "away with default text",
			line: "/away",
			want: Action{Kind: Away, Text: "AFK"},
		},
		{
			name: "away with custom text",
			line: "/away checking the antenna",
			want: Action{Kind: Away, Text: "checking the antenna"},
		},
		{
			name:    "me emote",
			line:    "/me keys the repeater",
			channel: "#Testing",
			want:    Action{Kind: Emote, Target: "#Testing", Text: "keys the repeater"},
		},
		{
			name:    "me without text",
			line:    "/me",
			channel: "#Testing",
			want:    Action{Kind: PrintUsage, Text: usage["me"]},
		},
		{
			name: "whois",
			line: "/whois W1AW",
			want: Action{Kind: Whois, Target: "W1AW"},
		},
		{
			name: "whois without argument",
			line: "/whois",
			want: Action{Kind: PrintUsage, Text: usage["whois"]},
		},
		{
			name:    "names",
			line:    "/names",
			channel: "#Testing",
			want:    Action{Kind: Names, Target: "#Testing"},
		},
		{
			name:    "slap canned emote",
			line:    "/slap W1AW",
			channel: "#Testing",
			want:    Action{Kind: Emote, Target: "#Testing", Text: "slaps W1AW around a bit with some coax."},
		},
		{
			name:    "slap without target",
			line:    "/slap",
			channel: "#Testing",
			want:    Action{Kind: PrintUsage, Text: usage["slap"]},
		},
		{
			name:    "lid without target",
			line:    "/lid",
			channel: "#Testing",
			want:    Action{Kind: Emote, Target: "#Testing", Text: "may possibly be a LID."},
		},
		{
			name:    "lid with target",
			line:    "/lid W1AW",
			channel: "#Testing",
			want:    Action{Kind: Emote, Target: "#Testing", Text: "presses the LID alarm while looking at W1AW."},
		},
		{
			name: "lid without a channel",
			line: "/lid",
			want: Action{Kind: PrintError, Text: "** You are not currently in any channel. Are you the LID?"},
		},
		{
			name: "status",
			line: "/status",
			want: Action{Kind: Status},
		},
		{
			name: "help",
			line: "/help",
			want: Action{Kind: Help},
		},
		{
			name: "unknown command",
			line: "/frobnicate",
			want: Action{Kind: PrintError, Text: "Unknown command."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.line, tt.channel))
		})
	}
}

func TestValidChannelName(t *testing.T) {
	valid := []string{"#Testing", "#a", "#packet-radio"}
	invalid := []string{"Testing", "#", "#two words", "#a,b", ""}

	for _, name := range valid {
		assert.True(t, ValidChannelName(name), name)
	}
	for _, name := range invalid {
		assert.False(t, ValidChannelName(name), name)
	}
}

func TestActionFiltered(t *testing.T) {
	filtered := []Kind{SendMessage, PrivMsg, Part, Quit, Topic, Away, Emote}
	for _, k := range filtered {
		assert.True(t, Action{Kind: k}.Filtered())
	}

	unfiltered := []Kind{Join, Nick, List, TopicQuery, Whois, Names, Status, Help, PrintUsage, PrintError, LinkLost}
	for _, k := range unfiltered {
		assert.False(t, Action{Kind: k}.Filtered())
	}
}

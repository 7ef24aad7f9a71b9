package command

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells the session loop what an interpreted input line asks for.
type Kind int

const (
	// SendMessage is a plain line addressed to the current channel.
	SendMessage Kind = iota
	// PrivMsg is a directed private message.
	PrivMsg
	Join
	Part
	Quit
	Nick
	List
	Topic
	TopicQuery
	Away
	Emote
	Whois
	Names
	// Status is local only: render client status, nothing on the wire.
	Status
	Help
	PrintUsage
	PrintError
	// LinkLost is the packet switch telling us the RF link dropped.
	LinkLost
)

// Action is the interpreter's verdict on one input line. Target is a
// channel or nick where the kind needs one; Text carries the free-form
// remainder with its internal spacing preserved.
type Action struct {
	Kind   Kind
	Target string
	Text   string
}

// Filtered reports whether the action's text is operator-originated and
// must pass the outbound content filter before transmission.
func (a Action) Filtered() bool {
	switch a.Kind {
	case SendMessage, PrivMsg, Part, Quit, Topic, Away, Emote:
		return true
	}
	return false
}

const notInChannel = "** You are not currently in any channel."

var usage = map[string]string{
	"quit":  "Usage: /quit [message] - Disconnect from the server with optional message.",
	"msg":   "Usage: /msg <nickname> <message> - Sends a private message to the specified user.",
	"join":  "Usage: /join <channel> - Joins the specified channel.",
	"part":  "Usage: /part [message] - Leaves the current channel.",
	"nick":  "Usage: /nick <nickname> - Changes your nickname.",
	"topic": "Usage: /topic [new topic] - Sets the channel topic or requests the current one.",
	"me":    "Usage: /me <action> - Performs an action.",
	"whois": "Usage: /whois <nickname> - Retrieves information about the specified user.",
	"slap":  "Usage: /slap <nickname> - Slaps a user around a bit with some coax.",
}

// channelNameRe accepts channel names with the leading marker and no
// whitespace or commas.
var channelNameRe = regexp.MustCompile(`^#[^\s,]+$`)

func ValidChannelName(name string) bool {
	return channelNameRe.MatchString(name)
}

// Interpret turns one operator line into an Action. Lines not starting
// with the slash marker are channel messages; slash lines split into a
// case-insensitive command name and one raw argument string (only the
// first space splits, inner spacing survives untouched).
func Interpret(line, currentChannel string) Action {
	if !strings.HasPrefix(line, "/") {
		// link-level disconnect notice from the switch, not chat
		if strings.HasPrefix(line, "*** Disconnected from") {
			return Action{Kind: LinkLost}
		}
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		return Action{Kind: SendMessage, Target: currentChannel, Text: line}
	}

	name, args := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		name, args = line[:i], strings.TrimSpace(line[i+1:])
	}
	name = strings.ToLower(strings.TrimPrefix(name, "/"))

	switch name {
	case "quit":
		msg := args
		if msg == "" {
			msg = "73"
		}
		return Action{Kind: Quit, Text: msg}

	case "msg":
		parts := strings.SplitN(args, " ", 2)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return Action{Kind: PrintUsage, Text: usage["msg"]}
		}
		return Action{Kind: PrivMsg, Target: parts[0], Text: parts[1]}

	case "join":
		if args == "" {
			return Action{Kind: PrintUsage, Text: usage["join"]}
		}
		if !ValidChannelName(args) {
			return Action{Kind: PrintError, Text: "** Invalid channel name."}
		}
		return Action{Kind: Join, Target: args}

	case "part":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		msg := args
		if msg == "" {
			msg = "Leaving"
		}
		return Action{Kind: Part, Target: currentChannel, Text: msg}

	case "nick":
		if args == "" {
			return Action{Kind: PrintUsage, Text: usage["nick"]}
		}
		return Action{Kind: Nick, Target: args}

	case "list":
		return Action{Kind: List}

	case "topic":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		if args == "" {
			return Action{Kind: TopicQuery, Target: currentChannel}
		}
		return Action{Kind: Topic, Target: currentChannel, Text: args}

	case "away":
		msg := args
		if msg == "" {
			msg = "AFK"
		}
		return Action{Kind: Away, Text: msg}

	case "me":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		if args == "" {
			return Action{Kind: PrintUsage, Text: usage["me"]}
		}
		return Action{Kind: Emote, Target: currentChannel, Text: args}

	case "whois":
		if args == "" {
			return Action{Kind: PrintUsage, Text: usage["whois"]}
		}
		return Action{Kind: Whois, Target: args}

	case "names":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		return Action{Kind: Names, Target: currentChannel}

	case "slap":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel}
		}
		if args == "" {
			return Action{Kind: PrintUsage, Text: usage["slap"]}
		}
		return Action{Kind: Emote, Target: currentChannel, Text: fmt.Sprintf("slaps %s around a bit with some coax.", args)}

	case "lid":
		if currentChannel == "" {
			return Action{Kind: PrintError, Text: notInChannel + " Are you the LID?"}
		}
		text := "may possibly be a LID."
		if args != "" {
			text = fmt.Sprintf("presses the LID alarm while looking at %s.", args)
		}
		return Action{Kind: Emote, Target: currentChannel, Text: text}

	case "status":
		return Action{Kind: Status}

	case "help":
		return Action{Kind: Help}

	default:
		return Action{Kind: PrintError, Text: "Unknown command."}
	}
}

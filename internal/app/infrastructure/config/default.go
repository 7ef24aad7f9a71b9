package config

const defaultHelpText = `PacketIRC commands:
  /quit [message] - Disconnect from the server with optional message.
  /msg <nickname> <message> - Send a private message to the specified user.
  /join <channel> - Join the specified channel.
  /part [message] - Leave the current channel.
  /nick <nickname> - Change your nickname.
  /list - List channels on the server.
  /names - Shows a list of users in the channel.
  /topic [new topic] - Set a new topic for the current channel or request the topic.
  /away [message] - Set an away message or clear the away status.
  /me <action> - Perform an action in the current channel.
  /whois <nickname> - Retrieves information about the specified user.
  /status - Show client status and resource usage.
  /help - Display this help message.`

const defaultWelcomeMessage = `Welcome to PacketIRC!
Type /help for a list of commands.`

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			LogFile:  "logs/packetirc.log",
		},
		Server: Server{
			Address:        "irc.example.com",
			Port:           6667,
			TimeoutSeconds: 10,
		},
		Client: Client{
			Channel:           "#Testing",
			HideServer:        true,
			MaxRetries:        3,
			RetryDelaySeconds: 5,
			KeepaliveSeconds:  30,
			NickRetryLimit:    10,
			WelcomeMessage:    defaultWelcomeMessage,
			HelpText:          defaultHelpText,
		},
		Filter: Filter{
			Enabled:   false,
			WordsFile: "bad_words.txt",
		},
		Limiter: Limiter{
			Messages:   5,
			PerSeconds: 10,
		},
		API: API{
			Enabled:    false,
			ListenAddr: "127.0.0.1:8680",
		},
	}
}

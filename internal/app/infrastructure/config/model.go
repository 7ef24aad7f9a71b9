package config

type Config struct {
	App     App     `json:"app"`
	Server  Server  `json:"server"`
	Client  Client  `json:"client"`
	Filter  Filter  `json:"filter"`
	Limiter Limiter `json:"limiter"`
	API     API     `json:"api"`
}

type App struct {
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

type Server struct {
	Address        string `json:"address"`
	Port           int    `json:"port"`
	Password       string `json:"password"`
	UseWebsocket   bool   `json:"use_websocket"`
	WebsocketURL   string `json:"websocket_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Client struct {
	Channel           string `json:"channel"`
	HideServer        bool   `json:"hide_server"`
	MaxRetries        int    `json:"max_retries"`
	RetryDelaySeconds int    `json:"retry_delay_seconds"`
	KeepaliveSeconds  int    `json:"keepalive_seconds"`
	NickRetryLimit    int    `json:"nick_retry_limit"`
	WelcomeMessage    string `json:"welcome_message"`
	HelpText          string `json:"help_text"`
}

type Filter struct {
	Enabled   bool   `json:"enabled"`
	WordsFile string `json:"words_file"`
}

// Limiter bounds the outbound message rate so a chatty operator cannot
// saturate the RF link.
type Limiter struct {
	Messages   int `json:"messages"`
	PerSeconds int `json:"per_seconds"`
}

type API struct {
	Enabled    bool   `json:"enabled"`
	ListenAddr string `json:"listen_addr"`
	AuthToken  string `json:"auth_token"`
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error, fatal; got %s", cfg.App.LogLevel)
	}
	if cfg.App.LogFile == "" {
		cfg.App.LogFile = "logs/packetirc.log"
	}

	// server
	if cfg.Server.UseWebsocket {
		if cfg.Server.WebsocketURL == "" {
			return errors.New("server.websocket_url is required when server.use_websocket is set")
		}
	} else {
		if cfg.Server.Address == "" {
			return errors.New("server.address is required")
		}
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("server.port must be in [1,65535]; got %d", cfg.Server.Port)
		}
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = 10
	}

	// client
	if cfg.Client.Channel != "" && !strings.HasPrefix(cfg.Client.Channel, "#") {
		return fmt.Errorf("client.channel must start with '#'; got %s", cfg.Client.Channel)
	}
	if cfg.Client.MaxRetries < 1 {
		return errors.New("client.max_retries must be at least 1")
	}
	if cfg.Client.RetryDelaySeconds < 0 {
		return errors.New("client.retry_delay_seconds must not be negative")
	}
	if cfg.Client.KeepaliveSeconds <= 0 {
		cfg.Client.KeepaliveSeconds = 30
	}
	if cfg.Client.NickRetryLimit <= 0 {
		cfg.Client.NickRetryLimit = 10
	}

	// limiter
	if (cfg.Limiter.Messages != 0 && cfg.Limiter.PerSeconds == 0) || (cfg.Limiter.Messages == 0 && cfg.Limiter.PerSeconds != 0) {
		return errors.New("limiter.messages and limiter.per_seconds must both be set or both be zero")
	}

	// api
	if cfg.API.Enabled && cfg.API.ListenAddr == "" {
		return errors.New("api.listen_addr is required when api.enabled is set")
	}
	if cfg.API.Enabled && cfg.API.AuthToken == "" {
		return errors.New("api.auth_token is required when api.enabled is set")
	}

	return nil
}

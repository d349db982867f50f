package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"pixshield/internal/backend"
	"pixshield/pkg/pixkey"
)

/*
Validate checks the fields every command depends on:
- Backend base URL, timeout and contract version
- PIX key fallback policy
- Debounce settings
- Demo account and transaction history
- Log level and format
*/
func (c *Config) Validate() error {
	// Backend config
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if _, err := backend.ParseContract(c.Backend.Contract); err != nil {
		return fmt.Errorf("backend.contract: %w", err)
	}

	// PIX key config
	if _, err := pixkey.ParseFallback(c.PixKey.Fallback); err != nil {
		return fmt.Errorf("pixkey.fallback: %w", err)
	}

	// Detection config
	if c.Detect.Delay <= 0 {
		return errors.New("detect.delay must be positive")
	}
	if c.Detect.MinLength < 0 {
		return errors.New("detect.min_length must not be negative")
	}

	// Account config
	if strings.TrimSpace(c.Account.Holder) == "" {
		return errors.New("account.holder is required")
	}
	if c.Account.BalanceCents < 0 {
		return errors.New("account.balance_cents must not be negative")
	}
	if c.History.MaxRecords <= 0 {
		return errors.New("history.max_records must be positive")
	}

	// Log config
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

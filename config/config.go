// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host     string
	Port     int
	Email    string
	Password string

	Mailbox string

	// SeenDatabase is the sqlite datasource backing the dedup set. The
	// default keeps it in memory so nothing survives a restart.
	SeenDatabase string
	MaxSeen      int

	Loglevel *string

	Debug DebugConfig
}

type DebugConfig struct {
	Enabled bool
	// Trace dumps the raw protocol exchange (credentials redacted) at trace
	// level.
	Trace bool
	// Sink appends the redacted protocol trace to the named file in
	// addition to the trace log.
	Sink string
}

// Addr returns the host:port dial address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Port:         993,
		Mailbox:      "INBOX",
		SeenDatabase: ":memory:",
		MaxSeen:      10000,
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := validateNonEmptyStringField(c.Host, "Host must not be empty, set to the hostname of the imap server"); err != nil {
		return err
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("Port must be between 1 and 65535, got %d", c.Port)
	}

	if err := validateNonEmptyStringField(c.Email, "Email must not be empty, set to the login name on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Password, "Password must not be empty, set to the password of Email on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Mailbox, "Mailbox must not be empty, leave unset for INBOX"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.SeenDatabase, "SeenDatabase must not be empty, leave unset for an in-memory set"); err != nil {
		return err
	}

	if c.MaxSeen <= 0 {
		return fmt.Errorf("MaxSeen must be positive, got %d", c.MaxSeen)
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}

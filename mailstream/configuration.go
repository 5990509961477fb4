// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import "fmt"

const (
	DefaultMailbox           = "INBOX"
	DefaultDecodeConcurrency = 8
	DefaultMaxSeen           = 10000
)

type ConfigFunc func(c *configuration) error

func WithMailbox(name string) ConfigFunc {
	return func(c *configuration) error {
		if len(name) == 0 {
			return fmt.Errorf("Mailbox cannot be empty")
		}

		c.Mailbox = name
		return nil
	}
}

func WithDecodeConcurrency(concurrency int) ConfigFunc {
	return func(c *configuration) error {
		if concurrency <= 0 {
			return fmt.Errorf("DecodeConcurrency must be positive, got %d", concurrency)
		}

		c.DecodeConcurrency = concurrency
		return nil
	}
}

func WithMaxSeen(maxSeen int) ConfigFunc {
	return func(c *configuration) error {
		if maxSeen <= 0 {
			return fmt.Errorf("MaxSeen must be positive, got %d", maxSeen)
		}

		c.MaxSeen = maxSeen
		return nil
	}
}

type configuration struct {
	Mailbox           string
	DecodeConcurrency int
	MaxSeen           int
}

func newConfiguration(configFunc ...ConfigFunc) (*configuration, error) {
	config := &configuration{
		Mailbox:           DefaultMailbox,
		DecodeConcurrency: DefaultDecodeConcurrency,
		MaxSeen:           DefaultMaxSeen,
	}

	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return config, nil
}

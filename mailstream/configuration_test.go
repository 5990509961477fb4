// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfgs []ConfigFunc
		want configuration
		err  string
	}{
		{
			"defaults",
			[]ConfigFunc{},
			configuration{Mailbox: "INBOX", DecodeConcurrency: 8, MaxSeen: 10000},
			"",
		},
		{
			"all set",
			[]ConfigFunc{WithMailbox("Archive"), WithDecodeConcurrency(2), WithMaxSeen(50)},
			configuration{Mailbox: "Archive", DecodeConcurrency: 2, MaxSeen: 50},
			"",
		},
		{
			"empty mailbox",
			[]ConfigFunc{WithMailbox("")},
			configuration{},
			"error applying configuration: Mailbox cannot be empty",
		},
		{
			"zero concurrency",
			[]ConfigFunc{WithDecodeConcurrency(0)},
			configuration{},
			"error applying configuration: DecodeConcurrency must be positive, got 0",
		},
		{
			"negative max seen",
			[]ConfigFunc{WithMaxSeen(-1)},
			configuration{},
			"error applying configuration: MaxSeen must be positive, got -1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := newConfiguration(tc.cfgs...)
			if len(tc.err) == 0 {
				assert.NoError(t, err)
				assert.Equal(t, tc.want, *config)
			} else {
				assert.Nil(t, config)
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

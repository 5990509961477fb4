// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	dir, err := ioutil.TempDir("", "config")
	assert.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	filename := path.Join(dir, "config.toml")
	assert.NoError(t, ioutil.WriteFile(filename, []byte(content), 0600))
	return filename
}

func TestReadConfig_Defaults(t *testing.T) {
	filename := writeConfig(t, `
Host = "imap.example.org"
Email = "user@example.org"
Password = "secret"
`)

	conf, err := ReadConfig(filename)
	assert.NoError(t, err)

	assert.Equal(t, "INBOX", conf.Mailbox)
	assert.Equal(t, 993, conf.Port)
	assert.Equal(t, ":memory:", conf.SeenDatabase)
	assert.Equal(t, 10000, conf.MaxSeen)
	assert.Equal(t, "imap.example.org:993", conf.Addr())
	assert.Nil(t, conf.Loglevel)
	assert.False(t, conf.Debug.Enabled)
	assert.Empty(t, conf.Debug.Sink)
}

func TestReadConfig_Overrides(t *testing.T) {
	filename := writeConfig(t, `
Host = "imap.example.org"
Port = 1993
Email = "user@example.org"
Password = "secret"
Mailbox = "Archive"
SeenDatabase = "seen.db"
MaxSeen = 50
Loglevel = "debug"

[Debug]
Enabled = true
Trace = true
Sink = "trace.log"
`)

	conf, err := ReadConfig(filename)
	assert.NoError(t, err)

	assert.Equal(t, "Archive", conf.Mailbox)
	assert.Equal(t, "imap.example.org:1993", conf.Addr())
	assert.Equal(t, "seen.db", conf.SeenDatabase)
	assert.Equal(t, 50, conf.MaxSeen)
	assert.Equal(t, "debug", *conf.Loglevel)
	assert.True(t, conf.Debug.Enabled)
	assert.True(t, conf.Debug.Trace)
	assert.Equal(t, "trace.log", conf.Debug.Sink)
}

func TestReadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{
			"missing host",
			`
Email = "user@example.org"
Password = "secret"
`,
			"Host must not be empty, set to the hostname of the imap server",
		},
		{
			"missing email",
			`
Host = "imap.example.org"
Password = "secret"
`,
			"Email must not be empty, set to the login name on the imap server",
		},
		{
			"missing password",
			`
Host = "imap.example.org"
Email = "user@example.org"
`,
			"Password must not be empty, set to the password of Email on the imap server",
		},
		{
			"bad port",
			`
Host = "imap.example.org"
Email = "user@example.org"
Password = "secret"
Port = 123456
`,
			"Port must be between 1 and 65535, got 123456",
		},
		{
			"bad max seen",
			`
Host = "imap.example.org"
Email = "user@example.org"
Password = "secret"
MaxSeen = -5
`,
			"MaxSeen must be positive, got -5",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf, err := ReadConfig(writeConfig(t, tc.content))
			assert.Nil(t, conf)
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	conf, err := ReadConfig("does-not-exist.toml")
	assert.Nil(t, conf)
	assert.Error(t, err)
}

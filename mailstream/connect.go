// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"github.com/mailstream/go-imap-stream/config"
	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/imapconnection"
	"github.com/mailstream/go-imap-stream/mail"
	"github.com/mailstream/go-imap-stream/seenstore"
)

// Connect wires the real collaborators from a config: sqlite-backed dedup
// store, imap session and MIME decoder. It returns only after both the
// connection is ready and the configured mailbox is selected; a failed
// handshake surfaces a ConnectionError, a rejected selection a MailboxError.
func Connect(conf *config.Config, configFunc ...ConfigFunc) (*Client, error) {
	seen, err := seenstore.NewSeenStore(conf.SeenDatabase)
	if err != nil {
		return nil, err
	}

	connection, err := imapconnection.Connect(conf)
	if err != nil {
		closeQuietly(seen)
		return nil, err
	}

	options := append(
		[]ConfigFunc{WithMailbox(conf.Mailbox), WithMaxSeen(conf.MaxSeen)},
		configFunc...,
	)

	client, err := New(connection, mail.NewDecoder(), seen, options...)
	if err != nil {
		_ = connection.Close()
		closeQuietly(seen)
		return nil, err
	}

	return client, nil
}

func closeQuietly(seen domain.SeenStore) {
	_ = seen.Close()
}

// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"bytes"
	"errors"
	"net"
	"testing"

	"github.com/mailstream/go-imap-stream/config"
	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
)

func testConnection(t *testing.T, status Status, selected string) *ImapConnection {
	log.InitLogging("error")
	return &ImapConnection{
		status:   status,
		selected: selected,
		updates:  make(chan domain.Update, updateBuffer),
		closed:   make(chan struct{}),
		l:        log.Logger(log.LOG_IMAP),
	}
}

func TestConnect_DialFailure(t *testing.T) {
	log.InitLogging("error")

	// grab a free port and close it again so nothing answers the dial
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	assert.NoError(t, listener.Close())

	conn, err := Connect(&config.Config{
		Host:     "127.0.0.1",
		Port:     port,
		Email:    "user@example.org",
		Password: "secret",
	})
	assert.Nil(t, conn)

	connErr := &domain.ConnectionError{}
	assert.True(t, errors.As(err, &connErr))
	assert.Equal(t, "dial", connErr.Op)
}

func TestSelect_RequiresReadySession(t *testing.T) {
	ic := testConnection(t, Disconnected, "")

	snapshot, err := ic.Select("INBOX")
	assert.Nil(t, snapshot)
	assert.True(t, errors.Is(err, domain.ErrNotConnected))
}

func TestSearchUnseen_RequiresReadySession(t *testing.T) {
	ic := testConnection(t, Failed, "")

	uids, err := ic.SearchUnseen()
	assert.Nil(t, uids)
	assert.True(t, errors.Is(err, domain.ErrNotConnected))
}

func TestSearchUnseen_RequiresSelectedMailbox(t *testing.T) {
	ic := testConnection(t, Ready, "")

	uids, err := ic.SearchUnseen()
	assert.Nil(t, uids)
	assert.True(t, errors.Is(err, domain.ErrNoMailbox))
}

func TestFetchParts_RequiresReadySession(t *testing.T) {
	ic := testConnection(t, Disconnected, "")

	out, errs := ic.FetchParts(&domain.FetchRequest{Uids: []uint32{1}})
	for range out {
		t.Fatal("no mails expected")
	}
	assert.True(t, errors.Is(<-errs, domain.ErrNotConnected))
}

func TestFetchParts_RequiresSelectedMailbox(t *testing.T) {
	ic := testConnection(t, Ready, "")

	out, errs := ic.FetchParts(&domain.FetchRequest{Uids: []uint32{1}})
	for range out {
		t.Fatal("no mails expected")
	}
	assert.True(t, errors.Is(<-errs, domain.ErrNoMailbox))
}

func TestReadParts(t *testing.T) {
	headerSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
		Peek:         true,
	}
	textSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier},
		Peek:         true,
	}

	// server-parsed response keys carry Peek=false (GetBody strips Peek
	// from the query before comparing)
	headerKey := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
	}
	textKey := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier},
	}

	msg := &imap.Message{
		Uid:    42,
		SeqNum: 7,
		Body: map[*imap.BodySectionName]imap.Literal{
			headerKey: bytes.NewBufferString("Subject: hi\r\n\r\n"),
			textKey:   bytes.NewBufferString("body bytes"),
		},
	}

	raw, err := readParts(msg, headerSection, textSection)
	assert.NoError(t, err)
	assert.Equal(t, uint32(42), raw.Uid)
	assert.Equal(t, uint32(7), raw.SeqNum)
	assert.Equal(t, []byte("Subject: hi\r\n\r\n"), raw.Header)
	assert.Equal(t, []byte("body bytes"), raw.Body)
}

func TestReadParts_MissingSectionsTolerated(t *testing.T) {
	headerSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
		Peek:         true,
	}
	textSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier},
		Peek:         true,
	}

	raw, err := readParts(&imap.Message{Uid: 1, SeqNum: 1}, headerSection, textSection)
	assert.NoError(t, err)
	assert.Empty(t, raw.Header)
	assert.Empty(t, raw.Body)
}

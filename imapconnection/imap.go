// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sync"

	"github.com/mailstream/go-imap-stream/config"
	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

// Status is the lifecycle state of the session. No search or fetch may be
// issued unless the session is Ready.
type Status int

const (
	Disconnected Status = iota
	Connecting
	Ready
	Failed
)

// updateBuffer bounds the unilateral-update queue; the underlying client
// must never block on its updates channel.
const updateBuffer = 32

type ImapConnection struct {
	connection *client.Client

	server, user string

	// cmdMu serializes protocol commands on the single connection and
	// guards the idle transitions around them.
	cmdMu    sync.Mutex
	idleStop chan struct{}
	idleDone chan error

	stateMu  sync.Mutex
	status   Status
	selected string

	updates chan domain.Update
	closed  chan struct{}

	// sink is the optional file receiving the redacted protocol trace.
	sink io.Closer

	l *logrus.Logger
}

// Connect dials the server over TLS and authenticates. Mailbox selection is a
// separate step, see Select. The returned session observes unsolicited server
// updates and runs IDLE between commands once a mailbox is selected.
func Connect(conf *config.Config) (*ImapConnection, error) {
	conn := &ImapConnection{
		server:  conf.Addr(),
		user:    conf.Email,
		status:  Connecting,
		updates: make(chan domain.Update, updateBuffer),
		closed:  make(chan struct{}),
		l:       log.Logger(log.LOG_IMAP),
	}

	imapClient, err := client.DialTLS(conn.server, nil)
	if err != nil {
		return nil, &domain.ConnectionError{Op: "dial", Err: err}
	}

	if conf.Debug.Enabled && conf.Debug.Trace {
		trace := &traceWriter{l: conn.l}
		if len(conf.Debug.Sink) > 0 {
			sink, err := os.OpenFile(conf.Debug.Sink, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				return nil, fmt.Errorf("could not open trace sink: %w", err)
			}
			conn.sink = sink
			trace.sink = sink
		}
		imapClient.SetDebug(trace)
	}

	err = imapClient.Login(conf.Email, conf.Password)
	if err != nil {
		conn.closeSink()
		return nil, &domain.ConnectionError{Op: "login", Err: err}
	}

	conn.connection = imapClient
	conn.status = Ready

	raw := make(chan client.Update, updateBuffer)
	imapClient.Updates = raw
	go conn.forwardUpdates(raw)

	conn.l.WithFields(logrus.Fields{"server": conn.server, "user": conn.user}).Debug("Logged in to server")
	return conn, nil
}

// Select selects the named mailbox read-only, replacing the previous
// selection. On server rejection the previous selection is kept and the
// session stays Ready.
func (ic *ImapConnection) Select(folder string) (*domain.MailboxSnapshot, error) {
	if !ic.isReady() {
		return nil, domain.ErrNotConnected
	}

	ic.beginCommand()
	defer ic.endCommand()

	m, err := ic.connection.Select(folder, true)
	if err != nil {
		return nil, &domain.MailboxError{Mailbox: folder, Err: err}
	}

	ic.stateMu.Lock()
	ic.selected = folder
	ic.stateMu.Unlock()

	ic.l.WithFields(logrus.Fields{"mailbox": folder, "messages": m.Messages, "uidvalidity": m.UidValidity}).Debug("Selected mailbox")
	return &domain.MailboxSnapshot{
		Name:        folder,
		Total:       m.Messages,
		Recent:      m.Recent,
		Unseen:      m.Unseen,
		UidValidity: m.UidValidity,
		Baseline:    m.Messages,
	}, nil
}

// SearchUnseen returns the uids of all messages without the Seen flag in the
// selected mailbox.
func (ic *ImapConnection) SearchUnseen() ([]uint32, error) {
	if !ic.isReady() {
		return nil, domain.ErrNotConnected
	}
	if len(ic.selectedMailbox()) == 0 {
		return nil, domain.ErrNoMailbox
	}

	ic.beginCommand()
	defer ic.endCommand()

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := ic.connection.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search for unseen mails: %w", err)
	}

	return ids, nil
}

// FetchParts issues one fetch covering the header and text body of every
// requested message. Messages are emitted on the first channel in the order
// the server reports them; the second channel carries the terminal fetch
// error, if any, once the first channel is closed.
func (ic *ImapConnection) FetchParts(req *domain.FetchRequest) (<-chan *domain.RawMail, <-chan error) {
	out := make(chan *domain.RawMail)
	errs := make(chan error, 1)

	if !ic.isReady() {
		errs <- domain.ErrNotConnected
		close(out)
		close(errs)
		return out, errs
	}
	if len(ic.selectedMailbox()) == 0 {
		errs <- domain.ErrNoMailbox
		close(out)
		close(errs)
		return out, errs
	}

	go ic.fetch(req, out, errs)
	return out, errs
}

func (ic *ImapConnection) fetch(req *domain.FetchRequest, out chan<- *domain.RawMail, errs chan<- error) {
	defer close(errs)
	defer close(out)

	ic.beginCommand()
	defer ic.endCommand()

	headerSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
		Peek:         true,
	}
	textSection := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier},
		Peek:         true,
	}
	items := []imap.FetchItem{imap.FetchUid, headerSection.FetchItem(), textSection.FetchItem()}

	seqset := &imap.SeqSet{}
	if req.Range != nil {
		seqset.AddRange(req.Range.From, req.Range.To)
	} else {
		seqset.AddNum(req.Uids...)
	}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		if req.Range != nil {
			done <- ic.connection.Fetch(seqset, items, messages)
		} else {
			done <- ic.connection.UidFetch(seqset, items, messages)
		}
	}()

	for msg := range messages {
		raw, err := readParts(msg, headerSection, textSection)
		if err != nil {
			for range messages {
				// drain so the fetch goroutine can finish
			}
			<-done
			errs <- err
			return
		}
		out <- raw
	}

	if err := <-done; err != nil {
		errs <- fmt.Errorf("could not fetch mails: %w", err)
	}
}

func readParts(msg *imap.Message, headerSection, textSection *imap.BodySectionName) (*domain.RawMail, error) {
	raw := &domain.RawMail{
		Uid:    msg.Uid,
		SeqNum: msg.SeqNum,
	}

	if r := msg.GetBody(headerSection); r != nil {
		header, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("could not read mail header: %w", err)
		}
		raw.Header = header
	}

	if r := msg.GetBody(textSection); r != nil {
		body, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("could not read mail body: %w", err)
		}
		raw.Body = body
	}

	return raw, nil
}

// Updates exposes the unsolicited server notifications observed on this
// session. The channel is never closed; readers select against their own
// shutdown signal.
func (ic *ImapConnection) Updates() <-chan domain.Update {
	return ic.updates
}

func (ic *ImapConnection) forwardUpdates(raw <-chan client.Update) {
	for {
		select {
		case <-ic.closed:
			return
		case u, ok := <-raw:
			if !ok {
				return
			}
			ic.publishUpdate(u)
		}
	}
}

func (ic *ImapConnection) publishUpdate(u client.Update) {
	var update domain.Update
	switch v := u.(type) {
	case *client.MailboxUpdate:
		update = &domain.MailboxUpdate{
			Name:   v.Mailbox.Name,
			Total:  v.Mailbox.Messages,
			Recent: v.Mailbox.Recent,
		}
	case *client.MessageUpdate:
		update = &domain.FlagUpdate{
			SeqNum: v.Message.SeqNum,
			Flags:  v.Message.Flags,
		}
	default:
		return
	}

	select {
	case ic.updates <- update:
	default:
		ic.l.Warn("Dropping server update, consumer not keeping up")
	}
}

// Close terminates the session. It always succeeds from the caller's point
// of view; transport errors during logout are logged only. Logout is issued
// without waiting for the command mutex so that an in-flight fetch fails
// instead of holding up the close.
func (ic *ImapConnection) Close() error {
	ic.stateMu.Lock()
	if ic.status == Disconnected {
		ic.stateMu.Unlock()
		return nil
	}
	ic.status = Disconnected
	ic.selected = ""
	ic.stateMu.Unlock()

	close(ic.closed)

	if err := ic.connection.Logout(); err != nil {
		ic.l.WithField("error", err).Debug("Logout failed")
	}
	ic.closeSink()
	ic.l.WithField("server", ic.server).Debug("Session closed")
	return nil
}

func (ic *ImapConnection) closeSink() {
	if ic.sink == nil {
		return
	}
	if err := ic.sink.Close(); err != nil {
		ic.l.WithField("error", err).Debug("Could not close trace sink")
	}
	ic.sink = nil
}

func (ic *ImapConnection) beginCommand() {
	ic.cmdMu.Lock()
	ic.stopIdleLocked()
}

func (ic *ImapConnection) endCommand() {
	ic.startIdleLocked()
	ic.cmdMu.Unlock()
}

func (ic *ImapConnection) stopIdleLocked() {
	if ic.idleStop == nil {
		return
	}
	close(ic.idleStop)
	if err := <-ic.idleDone; err != nil {
		ic.l.WithField("error", err).Debug("Idle ended with error")
	}
	ic.idleStop = nil
	ic.idleDone = nil
}

func (ic *ImapConnection) startIdleLocked() {
	if ic.idleStop != nil || !ic.isReady() || len(ic.selectedMailbox()) == 0 {
		return
	}

	stop := make(chan struct{})
	done := make(chan error, 1)
	ic.idleStop = stop
	ic.idleDone = done
	go func() {
		done <- ic.connection.Idle(stop, nil)
	}()
}

func (ic *ImapConnection) isReady() bool {
	ic.stateMu.Lock()
	defer ic.stateMu.Unlock()
	return ic.status == Ready
}

func (ic *ImapConnection) selectedMailbox() string {
	ic.stateMu.Lock()
	defer ic.stateMu.Unlock()
	return ic.selected
}

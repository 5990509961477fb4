// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"fmt"
	"sync"

	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	"github.com/sirupsen/logrus"
)

// Client owns one mailbox session and republishes incoming mail as events.
// Assembly cycles triggered by server pushes and by explicit unseen scans are
// serialized against each other; the uid dedup set guarantees each message is
// published at most once across both triggers.
type Client struct {
	connector domain.ImapConnector
	seen      domain.SeenStore
	bus       *EventBus
	assembler *assembler

	configuration *configuration

	// cycleMu serializes assembly cycles: compute request, assemble,
	// publish, advance state.
	cycleMu sync.Mutex

	mu       sync.Mutex
	snapshot *domain.MailboxSnapshot
	closed   bool
	done     chan struct{}

	l *logrus.Logger
}

// New selects the configured mailbox on the already-authenticated connector
// and starts observing server pushes. It returns only once the selection
// succeeded; a rejected selection fails with a MailboxError.
func New(connector domain.ImapConnector, decoder domain.MailDecoder, seen domain.SeenStore, configFunc ...ConfigFunc) (*Client, error) {
	config, err := newConfiguration(configFunc...)
	if err != nil {
		return nil, err
	}

	snapshot, err := connector.Select(config.Mailbox)
	if err != nil {
		return nil, err
	}

	l := log.Logger(log.LOG_MAILSTREAM)
	c := &Client{
		connector: connector,
		seen:      seen,
		bus:       NewEventBus(),
		assembler: &assembler{
			decoder:     decoder,
			concurrency: config.DecodeConcurrency,
			l:           l,
		},
		configuration: config,
		snapshot:      snapshot,
		done:          make(chan struct{}),
		l:             l,
	}

	go c.watchUpdates(connector.Updates())

	l.WithFields(logrus.Fields{"mailbox": snapshot.Name, "messages": snapshot.Total}).Info("Watching mailbox")
	return c, nil
}

// OnMail registers a handler for every published mail record.
func (c *Client) OnMail(handler MailHandler) Subscription {
	return c.bus.SubscribeMail(handler)
}

// OnError registers a handler for push-cycle failures, which have no
// synchronous caller to reject.
func (c *Client) OnError(handler ErrorHandler) Subscription {
	return c.bus.SubscribeError(handler)
}

func (c *Client) Off(id Subscription) {
	c.bus.Unsubscribe(id)
}

// CurrentMailbox returns a copy of the selected mailbox state, or nil when
// none is selected.
func (c *Client) CurrentMailbox() *domain.MailboxSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return nil
	}
	snapshot := *c.snapshot
	return &snapshot
}

// GetUnseenMails searches the selected mailbox for unseen messages and
// publishes every one not already delivered. When the search result is empty
// after dedup, no fetch is issued at all.
func (c *Client) GetUnseenMails() error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	// The selection is read only once the cycle mutex is held: a switch
	// completing while the scan waited must not leave search and dedup
	// keyed on different mailboxes.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrNotConnected
	}
	if c.snapshot == nil {
		c.mu.Unlock()
		return domain.ErrNoMailbox
	}
	mailbox := c.snapshot.Name
	c.mu.Unlock()

	uids, err := c.connector.SearchUnseen()
	if err != nil {
		if c.isClosed() {
			return &domain.ConnectionError{Op: "search", Err: err}
		}
		return &domain.FetchError{Err: err}
	}

	fresh, err := c.seen.Filter(mailbox, uids)
	if err != nil {
		return fmt.Errorf("could not filter delivered mails: %w", err)
	}

	if len(fresh) == 0 {
		c.l.WithField("mailbox", mailbox).Debug("No new unseen mails")
		return nil
	}

	c.l.WithFields(logrus.Fields{"mailbox": mailbox, "unseen": len(fresh)}).Debug("Fetching unseen mails")
	_, err = c.runCycle(mailbox, &domain.FetchRequest{Uids: fresh})
	return err
}

// SwitchMailbox deselects the current mailbox and selects the named one. On
// server rejection the previous selection is kept and the returned error is
// a retryable MailboxError.
func (c *Client) SwitchMailbox(name string) (*domain.MailboxSnapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrNotConnected
	}
	c.mu.Unlock()

	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	snapshot, err := c.connector.Select(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	c.l.WithFields(logrus.Fields{"mailbox": name, "messages": snapshot.Total}).Info("Switched mailbox")
	copied := *snapshot
	return &copied, nil
}

// Close terminates the session and the update watcher. Idempotent; errors
// from the underlying teardown are logged, not surfaced. An outstanding
// assembly cycle fails with a ConnectionError instead of hanging.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	if err := c.connector.Close(); err != nil {
		c.l.WithField("error", err).Debug("Could not close imap session")
	}
	if err := c.seen.Close(); err != nil {
		c.l.WithField("error", err).Debug("Could not close seen store")
	}
	return nil
}

func (c *Client) watchUpdates(updates <-chan domain.Update) {
	for {
		select {
		case <-c.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			switch u := update.(type) {
			case *domain.MailboxUpdate:
				c.handleMailboxUpdate(u)
			case *domain.FlagUpdate:
				c.l.WithFields(logrus.Fields{"seqnum": u.SeqNum, "flags": u.Flags}).Debug("Observed flag update")
			}
		}
	}
}

// handleMailboxUpdate reacts to a pushed message-count change: it fetches
// the sequence range above the current baseline and advances the baseline
// only after the cycle succeeded. A failed cycle leaves the baseline alone
// so the next push retries the same range. Updates naming a mailbox other
// than the selected one are stale leftovers from before a switch and are
// dropped.
func (c *Client) handleMailboxUpdate(u *domain.MailboxUpdate) {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	c.mu.Lock()
	if c.closed || c.snapshot == nil || c.snapshot.Name != u.Name {
		c.mu.Unlock()
		return
	}
	mailbox := c.snapshot.Name
	baseline := c.snapshot.Baseline
	c.snapshot.Total = u.Total
	c.snapshot.Recent = u.Recent
	if u.Total < baseline {
		// Expunges shrank the mailbox, realign so later deltas stay correct.
		c.snapshot.Baseline = u.Total
	}
	c.mu.Unlock()

	if u.Total <= baseline {
		return
	}

	delta := u.Total - baseline
	c.l.WithFields(logrus.Fields{"mailbox": mailbox, "new": delta}).Debug("Server reported new mails")

	request := &domain.FetchRequest{
		Range: &domain.SeqRange{From: baseline + 1, To: u.Total},
	}
	if _, err := c.runCycle(mailbox, request); err != nil {
		c.bus.PublishError(err)
		return
	}

	c.mu.Lock()
	if c.snapshot != nil && c.snapshot.Name == mailbox {
		c.snapshot.Baseline = u.Total
	}
	c.mu.Unlock()
}

// runCycle assembles the requested messages, publishes each record once and
// marks it delivered. Must be called with cycleMu held.
func (c *Client) runCycle(mailbox string, request *domain.FetchRequest) ([]uint32, error) {
	records, err := c.assembler.assemble(c.connector, request)
	if err != nil {
		if c.isClosed() {
			return nil, &domain.ConnectionError{Op: "fetch", Err: err}
		}
		return nil, &domain.FetchError{Err: err}
	}

	if c.isClosed() {
		// Session closed while decoding, discard the results.
		return nil, &domain.ConnectionError{Op: "fetch", Err: domain.ErrNotConnected}
	}

	published := make([]uint32, 0, len(records))
	for _, record := range records {
		c.bus.PublishMail(record)
		published = append(published, record.Uid)
	}

	if len(published) > 0 {
		if err := c.seen.Mark(mailbox, published); err != nil {
			return published, fmt.Errorf("could not mark mails as delivered: %w", err)
		}
		if err := c.seen.Evict(mailbox, c.configuration.MaxSeen); err != nil {
			return published, fmt.Errorf("could not evict delivered mails: %w", err)
		}
	}

	return published, nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

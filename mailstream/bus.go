// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"sync"

	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	"github.com/sirupsen/logrus"
)

// MailHandler receives one published mail record. The record is shared by
// all subscribers and must be treated as immutable.
type MailHandler func(record *domain.MailRecord)

// ErrorHandler receives failures of push-triggered assembly cycles, which
// have no synchronous caller.
type ErrorHandler func(err error)

// Subscription identifies one registered handler for unsubscription.
type Subscription uint64

type subscriber struct {
	id      Subscription
	onMail  MailHandler
	onError ErrorHandler
}

// EventBus is the in-process publish point. Delivery is synchronous, in
// registration order, against a stable snapshot of the subscriber list, so
// subscribing or unsubscribing from within a handler is safe. A panicking
// subscriber is isolated and does not prevent delivery to the rest.
type EventBus struct {
	mu          sync.Mutex
	nextId      Subscription
	subscribers []subscriber

	l *logrus.Logger
}

func NewEventBus() *EventBus {
	return &EventBus{
		l: log.Logger(log.LOG_BUS),
	}
}

func (b *EventBus) SubscribeMail(handler MailHandler) Subscription {
	return b.add(subscriber{onMail: handler})
}

func (b *EventBus) SubscribeError(handler ErrorHandler) Subscription {
	return b.add(subscriber{onError: handler})
}

func (b *EventBus) add(s subscriber) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextId++
	s.id = b.nextId
	b.subscribers = append(b.subscribers, s)
	return s.id
}

func (b *EventBus) Unsubscribe(id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.subscribers {
		if b.subscribers[i].id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func (b *EventBus) PublishMail(record *domain.MailRecord) {
	for _, s := range b.snapshot() {
		if s.onMail != nil {
			b.deliver(func() { s.onMail(record) })
		}
	}
}

func (b *EventBus) PublishError(err error) {
	for _, s := range b.snapshot() {
		if s.onError != nil {
			b.deliver(func() { s.onError(err) })
		}
	}
}

func (b *EventBus) snapshot() []subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]subscriber(nil), b.subscribers...)
}

func (b *EventBus) deliver(call func()) {
	defer func() {
		if r := recover(); r != nil {
			b.l.WithField("panic", r).Error("Subscriber panicked during delivery")
		}
	}()
	call()
}

// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"errors"
	"testing"

	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_DeliversInRegistrationOrder(t *testing.T) {
	log.InitLogging("error")
	bus := NewEventBus()

	order := []string{}
	bus.SubscribeMail(func(record *domain.MailRecord) {
		order = append(order, "first")
	})
	bus.SubscribeMail(func(record *domain.MailRecord) {
		order = append(order, "second")
	})
	bus.SubscribeMail(func(record *domain.MailRecord) {
		order = append(order, "third")
	})

	bus.PublishMail(&domain.MailRecord{Uid: 1})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEventBus_PanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	log.InitLogging("error")
	bus := NewEventBus()

	delivered := 0
	bus.SubscribeMail(func(record *domain.MailRecord) {
		panic("broken subscriber")
	})
	bus.SubscribeMail(func(record *domain.MailRecord) {
		delivered++
	})

	bus.PublishMail(&domain.MailRecord{Uid: 1})
	assert.Equal(t, 1, delivered)
}

func TestEventBus_UnsubscribeDuringPublish(t *testing.T) {
	log.InitLogging("error")
	bus := NewEventBus()

	firstDeliveries, secondDeliveries := 0, 0
	var first Subscription
	first = bus.SubscribeMail(func(record *domain.MailRecord) {
		firstDeliveries++
		bus.Unsubscribe(first)
	})
	bus.SubscribeMail(func(record *domain.MailRecord) {
		secondDeliveries++
	})

	bus.PublishMail(&domain.MailRecord{Uid: 1})
	bus.PublishMail(&domain.MailRecord{Uid: 2})

	assert.Equal(t, 1, firstDeliveries)
	assert.Equal(t, 2, secondDeliveries)
}

func TestEventBus_SameRecordToAllSubscribers(t *testing.T) {
	log.InitLogging("error")
	bus := NewEventBus()

	record := &domain.MailRecord{Uid: 42}
	seen := []*domain.MailRecord{}
	bus.SubscribeMail(func(r *domain.MailRecord) {
		seen = append(seen, r)
	})
	bus.SubscribeMail(func(r *domain.MailRecord) {
		seen = append(seen, r)
	})

	bus.PublishMail(record)
	assert.Len(t, seen, 2)
	assert.Same(t, record, seen[0])
	assert.Same(t, record, seen[1])
}

func TestEventBus_ErrorSubscribersSeparateFromMail(t *testing.T) {
	log.InitLogging("error")
	bus := NewEventBus()

	mailDeliveries, errorDeliveries := 0, 0
	bus.SubscribeMail(func(record *domain.MailRecord) {
		mailDeliveries++
	})
	bus.SubscribeError(func(err error) {
		errorDeliveries++
	})

	bus.PublishError(errors.New("cycle failed"))
	assert.Equal(t, 0, mailDeliveries)
	assert.Equal(t, 1, errorDeliveries)
}

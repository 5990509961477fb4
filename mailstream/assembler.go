// SPDX-License-Identifier: GPL-3.0-or-later
package mailstream

import (
	"sync"

	"github.com/mailstream/go-imap-stream/domain"

	"github.com/sirupsen/logrus"
)

// assembler turns one fetch request into validated mail records. Decoding of
// distinct messages runs concurrently under a bounded semaphore, but the
// returned records follow the order the fetch first reported each message,
// not decode completion order.
type assembler struct {
	decoder     domain.MailDecoder
	concurrency int

	l *logrus.Logger
}

// pending pairs one streamed message with its decode outcome. Each instance
// is written by exactly one decode goroutine.
type pending struct {
	raw     *domain.RawMail
	decoded *domain.DecodedMail
	err     error
}

func (a *assembler) assemble(connector domain.ImapConnector, req *domain.FetchRequest) ([]*domain.MailRecord, error) {
	messages, errs := connector.FetchParts(req)

	semaphore := make(chan bool, a.concurrency)
	var wg sync.WaitGroup

	// arrival order, the ordering contract of the assembly
	arrivals := []*pending{}
	for raw := range messages {
		p := &pending{raw: raw}
		arrivals = append(arrivals, p)

		semaphore <- true
		wg.Add(1)
		go func(p *pending) {
			defer wg.Done()
			p.decoded, p.err = a.decoder.Decode(p.raw.Header, p.raw.Body)
			<-semaphore
		}(p)
	}

	fetchErr := <-errs
	wg.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}

	records := make([]*domain.MailRecord, 0, len(arrivals))
	for _, p := range arrivals {
		if p.err != nil {
			decodeErr := &domain.DecodeError{Uid: p.raw.Uid, Err: p.err}
			a.l.WithFields(logrus.Fields{"uid": p.raw.Uid, "error": decodeErr.Error()}).Warn("Skipping undecodable mail")
			continue
		}
		if p.raw.Uid == 0 {
			a.l.WithField("seqnum", p.raw.SeqNum).Warn("Skipping mail without uid attribute")
			continue
		}

		records = append(
			records,
			&domain.MailRecord{
				Uid:     p.raw.Uid,
				From:    p.decoded.From,
				To:      p.decoded.To,
				Subject: p.decoded.Subject,
				Date:    p.decoded.Date,
				Text:    p.decoded.Text,
				Html:    p.decoded.Html,
			},
		)
	}

	return records, nil
}

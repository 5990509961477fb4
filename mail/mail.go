// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/sirupsen/logrus"
)

// Decoder turns one message's raw header and body bytes into structured
// fields. It is stateless and safe for concurrent use.
type Decoder struct {
	l *logrus.Logger
}

func NewDecoder() *Decoder {
	return &Decoder{
		l: log.Logger(log.LOG_MAIL),
	}
}

func (d *Decoder) Decode(header []byte, body []byte) (*domain.DecodedMail, error) {
	reader, err := mail.CreateReader(bytes.NewReader(joinParts(header, body)))
	if err != nil {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}

	decoded := &domain.DecodedMail{}

	h := reader.Header
	decoded.From = addressList(h, "From")
	decoded.To = addressList(h, "To")

	subject, err := h.Subject()
	if err != nil {
		// Keep the best-effort value, a broken encoded word should not
		// drop the whole message.
		d.l.WithField("error", err).Debug("Could not fully decode subject header")
	}
	decoded.Subject = subject

	date, err := h.Date()
	if err != nil {
		d.l.WithField("error", err).Debug("Could not parse date header")
	} else {
		decoded.Date = date
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read mime part: %w", err)
		}

		inline, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		mediaType, _, err := inline.ContentType()
		if err != nil {
			d.l.WithField("error", err).Debug("Skipping part with malformed content type")
			continue
		}

		switch {
		case mediaType == "text/plain" && decoded.Text == nil:
			decoded.Text, err = ioutil.ReadAll(part.Body)
		case mediaType == "text/html" && decoded.Html == nil:
			decoded.Html, err = ioutil.ReadAll(part.Body)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read mail part body: %w", err)
		}
	}

	return decoded, nil
}

func addressList(h mail.Header, key string) []domain.Address {
	list, err := h.AddressList(key)
	if err != nil || len(list) == 0 {
		return nil
	}

	addresses := make([]domain.Address, 0, len(list))
	for _, a := range list {
		addresses = append(addresses, splitAddress(a.Name, a.Address))
	}
	return addresses
}

func splitAddress(name, address string) domain.Address {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return domain.Address{Name: name, Mailbox: address}
	}
	return domain.Address{
		Name:    name,
		Mailbox: address[:at],
		Host:    address[at+1:],
	}
}

// joinParts reassembles a full message from the separately fetched header
// and text sections.
func joinParts(header, body []byte) []byte {
	h := bytes.TrimRight(header, "\r\n")
	joined := make([]byte, 0, len(h)+4+len(body))
	joined = append(joined, h...)
	joined = append(joined, "\r\n\r\n"...)
	joined = append(joined, body...)
	return joined
}

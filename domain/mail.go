// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

// Address is a single mail address, split into its display name and
// mailbox/host pair. Name may be empty.
type Address struct {
	Name    string
	Mailbox string
	Host    string
}

func (a Address) String() string {
	if len(a.Name) > 0 {
		return a.Name + " <" + a.Mailbox + "@" + a.Host + ">"
	}
	return a.Mailbox + "@" + a.Host
}

// MailRecord is the unit delivered to mail subscribers. It is immutable once
// constructed and carries no reference to the connection that produced it.
type MailRecord struct {
	Uid     uint32
	From    []Address
	To      []Address
	Subject string
	Date    time.Time
	Text    []byte
	Html    []byte
}

// DecodedMail holds the structured fields extracted from one message's raw
// header and body bytes.
type DecodedMail struct {
	From    []Address
	To      []Address
	Subject string
	Date    time.Time
	Text    []byte
	Html    []byte
}

//go:generate mockgen -destination=mocks/decoder.go -package=mocks . MailDecoder
type MailDecoder interface {
	Decode(header []byte, body []byte) (*DecodedMail, error)
}

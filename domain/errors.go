// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

// ErrNotConnected is returned when an operation requires a live session.
var ErrNotConnected = errors.New("not connected")

// ErrNoMailbox is returned when an operation requires a selected mailbox.
var ErrNoMailbox = errors.New("no mailbox selected")

// ConnectionError is a transport or authentication failure. It is fatal to
// the session; the client must be recreated.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return "connection failed during " + e.Op + ": " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MailboxError is a mailbox selection failure. The session stays usable, the
// previous selection is kept.
type MailboxError struct {
	Mailbox string
	Err     error
}

func (e *MailboxError) Error() string {
	return "could not select mailbox " + e.Mailbox + ": " + e.Err.Error()
}

func (e *MailboxError) Unwrap() error {
	return e.Err
}

// FetchError is a search or fetch transport failure. The triggering cycle
// publishes nothing.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetch failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError is a per-message MIME decoding failure. It never fails the
// batch; the message is logged and dropped.
type DecodeError struct {
	Uid uint32
	Err error
}

func (e *DecodeError) Error() string {
	return "could not decode mail: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

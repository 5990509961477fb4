// SPDX-License-Identifier: GPL-3.0-or-later
package domain

// MailboxSnapshot is the point-in-time state of the selected mailbox.
// Baseline is the message count already consumed by push-triggered fetches;
// it starts at Total on selection and only advances after an assembly cycle
// completes successfully.
type MailboxSnapshot struct {
	Name        string
	Total       uint32
	Recent      uint32
	Unseen      uint32
	UidValidity uint32
	Baseline    uint32
}

// SeqRange is a contiguous, inclusive sequence-number range.
type SeqRange struct {
	From uint32
	To   uint32
}

// FetchRequest identifies the messages one assembly cycle retrieves: either
// an explicit UID list (from a search) or a sequence range (from a new-mail
// delta). Exactly one of the two is set.
type FetchRequest struct {
	Uids  []uint32
	Range *SeqRange
}

func (r *FetchRequest) Empty() bool {
	if r.Range != nil {
		return r.Range.To < r.Range.From
	}
	return len(r.Uids) == 0
}

// RawMail is one message's raw parts as streamed by a fetch, in the order
// the server reported them. Uid is 0 when the server omitted the UID
// attribute.
type RawMail struct {
	Uid    uint32
	SeqNum uint32
	Header []byte
	Body   []byte
}

// Update is a unilateral server notification observed on the session.
type Update interface {
	update()
}

// MailboxUpdate reports a new total message count for the selected mailbox.
type MailboxUpdate struct {
	Name   string
	Total  uint32
	Recent uint32
}

func (*MailboxUpdate) update() {}

// FlagUpdate reports a flag change on a single message. Informational only.
type FlagUpdate struct {
	SeqNum uint32
	Flags  []string
}

func (*FlagUpdate) update() {}

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector
type ImapConnector interface {
	Select(folder string) (*MailboxSnapshot, error)
	SearchUnseen() ([]uint32, error)
	FetchParts(req *FetchRequest) (<-chan *RawMail, <-chan error)
	Updates() <-chan Update

	Close() error
}

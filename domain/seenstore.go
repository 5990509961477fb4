// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/seenstore.go -package=mocks . SeenStore
type SeenStore interface {
	// Filter returns the subset of uids not yet marked for the mailbox,
	// preserving input order.
	Filter(mailbox string, uids []uint32) ([]uint32, error)
	// Mark records uids as delivered for the mailbox. Called only after the
	// corresponding mail events have been published.
	Mark(mailbox string, uids []uint32) error
	// Evict drops the lowest uids of the mailbox until at most keep remain.
	Evict(mailbox string, keep int) error

	Close() error
}

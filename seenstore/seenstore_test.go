// SPDX-License-Identifier: GPL-3.0-or-later
package seenstore

import (
	"testing"

	"github.com/mailstream/go-imap-stream/log"

	"github.com/stretchr/testify/assert"
)

func testStore(t *testing.T) *SeenStore {
	log.InitLogging("error")
	store, err := NewSeenStore(":memory:")
	assert.NoError(t, err)
	return store
}

func TestFilter_EmptyStoreReturnsAll(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	fresh, err := store.Filter("INBOX", []uint32{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, fresh)
}

func TestFilter_EmptyInput(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	fresh, err := store.Filter("INBOX", nil)
	assert.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestMarkThenFilter(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	assert.NoError(t, store.Mark("INBOX", []uint32{1, 2, 3}))

	fresh, err := store.Filter("INBOX", []uint32{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, []uint32{4}, fresh)
}

func TestMark_Idempotent(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	assert.NoError(t, store.Mark("INBOX", []uint32{7}))
	assert.NoError(t, store.Mark("INBOX", []uint32{7}))

	fresh, err := store.Filter("INBOX", []uint32{7})
	assert.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestFilter_PerMailbox(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	assert.NoError(t, store.Mark("INBOX", []uint32{1}))

	fresh, err := store.Filter("Archive", []uint32{1})
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1}, fresh)
}

func TestEvict_KeepsHighestUids(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	assert.NoError(t, store.Mark("INBOX", []uint32{1, 2, 3, 4, 5}))
	assert.NoError(t, store.Evict("INBOX", 2))

	// 4 and 5 survive, the evicted low uids look fresh again
	fresh, err := store.Filter("INBOX", []uint32{1, 2, 3, 4, 5})
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, fresh)
}

func TestEvict_OnlyNamedMailbox(t *testing.T) {
	store := testStore(t)
	defer store.Close()

	assert.NoError(t, store.Mark("INBOX", []uint32{1, 2}))
	assert.NoError(t, store.Mark("Archive", []uint32{1, 2}))
	assert.NoError(t, store.Evict("INBOX", 1))

	fresh, err := store.Filter("Archive", []uint32{1, 2})
	assert.NoError(t, err)
	assert.Empty(t, fresh)
}

// SPDX-License-Identifier: GPL-3.0-or-later
package seenstore

import (
	"fmt"

	"github.com/mailstream/go-imap-stream/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-create-seen",
			Up: []string{
				`CREATE TABLE seen (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					mailbox TEXT NOT NULL,
					uid INTEGER NOT NULL,
					UNIQUE(mailbox, uid)
				)`,
				`CREATE INDEX seen_mailbox_uid ON seen(mailbox, uid)`,
			},
			Down: []string{`DROP TABLE seen`},
		},
	},
}

// SeenStore tracks which uids per mailbox have already been delivered as
// events. It runs on sqlite; the default ":memory:" datasource keeps the set
// process-local.
type SeenStore struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewSeenStore(datasource string) (*SeenStore, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_SEENSTORE)

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithFields(logrus.Fields{"datasource": datasource, "migrations": appliedMigrations}).Debug("Connected")

	return &SeenStore{
		db: db,
		l:  l,
	}, nil
}

func (s *SeenStore) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	s.l.Debug("Disconnected")
	return nil
}

// Filter returns the subset of uids not yet marked for the mailbox,
// preserving input order.
func (s *SeenStore) Filter(mailbox string, uids []uint32) ([]uint32, error) {
	if len(uids) == 0 {
		return []uint32{}, nil
	}

	qry, args, err := sqlx.Named(
		"SELECT uid FROM seen WHERE mailbox = :mailbox AND uid IN (:uids)",
		map[string]interface{}{
			"mailbox": mailbox,
			"uids":    uids,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not create query: %w", err)
	}

	qry, args, err = sqlx.In(qry, args...)
	if err != nil {
		return nil, fmt.Errorf("could not replace IN in query: %w", err)
	}

	known := []uint32{}
	err = s.db.Select(&known, qry, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	knownSet := map[uint32]bool{}
	for _, uid := range known {
		knownSet[uid] = true
	}

	fresh := []uint32{}
	for _, uid := range uids {
		if !knownSet[uid] {
			fresh = append(fresh, uid)
		}
	}

	return fresh, nil
}

// Mark records uids as delivered for the mailbox. Re-marking a uid is a
// no-op.
func (s *SeenStore) Mark(mailbox string, uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen(mailbox, uid) VALUES(?, ?)")
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not prepare statement: %w", err))
	}

	for _, uid := range uids {
		_, err := stmt.Exec(mailbox, uid)
		if err != nil {
			return txEnd(tx, fmt.Errorf("could not mark uid: %w", err))
		}
	}

	return txEnd(tx, nil)
}

// Evict drops the lowest uids of the mailbox until at most keep remain,
// bounding the growth of the set.
func (s *SeenStore) Evict(mailbox string, keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM seen WHERE mailbox = ? AND uid NOT IN (
			SELECT uid FROM seen WHERE mailbox = ? ORDER BY uid DESC LIMIT ?
		)`,
		mailbox, mailbox, keep,
	)
	if err != nil {
		return fmt.Errorf("could not evict uids: %w", err)
	}

	return nil
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}

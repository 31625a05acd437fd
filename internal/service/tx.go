package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withRowLock adds SELECT ... FOR UPDATE to the query so that the
// read-then-write sections of a transaction (stock checks, RSVP capacity
// checks) serialize against concurrent transactions on the same rows.
// SQLite has no FOR UPDATE in its grammar; its write transactions are
// exclusive, so the clause is skipped on that dialect.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

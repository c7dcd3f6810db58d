package repository

import "gorm.io/gorm"

// TxManager runs a function inside one database transaction. The scoring
// engine wraps a ledger write plus both recomputations in a single unit so a
// failure rolls everything back, raw write included.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}

package repository

import (
	"gorm.io/gorm"
)

// SequenceRepository hands out per-prefix document numbers.
type SequenceRepository interface {
	// NextTx atomically increments the counter for prefix and returns the new value.
	// It must run inside the transaction that persists the numbered document so a
	// rollback also gives the number back.
	NextTx(tx *gorm.DB, prefix string) (int64, error)
}

type sequenceRepo struct{}

func NewSequenceRepository() SequenceRepository { return &sequenceRepo{} }

const nextSequenceSQL = `
INSERT INTO document_sequences (prefix, last_value) VALUES (?, 1)
ON CONFLICT (prefix) DO UPDATE SET last_value = document_sequences.last_value + 1
RETURNING last_value`

func (r *sequenceRepo) NextTx(tx *gorm.DB, prefix string) (int64, error) {
	var next int64
	if err := tx.Raw(nextSequenceSQL, prefix).Scan(&next).Error; err != nil {
		return 0, translate(err, "next document number")
	}
	return next, nil
}

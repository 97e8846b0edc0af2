package service

import (
	"fmt"
	"time"

	"github.com/HostingCuenca/vet-system/internal/repository"

	"gorm.io/gorm"
)

// Document kinds. Each kind gets its own counter per calendar day.
const (
	KindSession = "CSH"
	KindSale    = "VTA"
	KindReceipt = "REC"
)

var numberWidth = map[string]int{
	KindSession: 3,
	KindSale:    3,
	KindReceipt: 4,
}

// Numbering formats human-readable document numbers such as CSH20261015001.
// The day is taken in the business time zone.
type Numbering struct {
	seq repository.SequenceRepository
	loc *time.Location
	now func() time.Time
}

func NewNumbering(seq repository.SequenceRepository, loc *time.Location) *Numbering {
	if loc == nil {
		loc = time.UTC
	}
	return &Numbering{seq: seq, loc: loc, now: time.Now}
}

// WithClock replaces the time source. Tests use it to pin the calendar day.
func (n *Numbering) WithClock(now func() time.Time) *Numbering {
	n.now = now
	return n
}

// Now returns the current time in the business time zone.
func (n *Numbering) Now() time.Time { return n.now().In(n.loc) }

// Next reserves the next number of the given kind inside tx.
func (n *Numbering) Next(tx *gorm.DB, kind string) (string, error) {
	prefix := kind + n.Now().Format("20060102")
	seq, err := n.seq.NextTx(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("numbering %s: %w", kind, err)
	}
	return fmt.Sprintf("%s%0*d", prefix, numberWidth[kind], seq), nil
}

package model

// DocumentSequence is an atomic per-day counter, keyed by the full number prefix
// (e.g. "VTA20261015"). LastValue is the last number handed out for that prefix.
type DocumentSequence struct {
	Prefix    string `gorm:"type:varchar(16);primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
}

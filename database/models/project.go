package models

import (
	"gorm.io/gorm"
)

// Project tracks import progress for one network. Checkpoint holds the
// last fully imported day as string-encoded Unix seconds. PendingReset
// asks the next run to rewind the checkpoint to the epoch start before
// doing anything else.
type Project struct {
	gorm.Model
	Name         string `gorm:"unique"`
	Checkpoint   string
	PendingReset bool
}

package domain

// BlockRelation Model
// Directed block: blocker hides the blocked user. The composite unique index
// makes repeated blocks of the same user idempotent.
type BlockRelation struct {
	ID        uint  `gorm:"primaryKey"`                      // Primary key
	BlockerID uint  `gorm:"uniqueIndex:idx_blocker_blocked"` // Foreign key to the blocking User
	BlockedID uint  `gorm:"uniqueIndex:idx_blocker_blocked"` // Foreign key to the blocked User
	CreatedAt int64 `gorm:"autoCreateTime:milli"`            // Timestamp of creation in milliseconds
}

package domain

// Transaction Model
// Append-only mock payment record. No balance is kept anywhere, so the amount
// is recorded exactly as submitted and never checked against funds.
type Transaction struct {
	ID         uint    `gorm:"primaryKey"` // Primary key
	SenderID   uint    `gorm:"index"`      // Foreign key to the sending User
	ReceiverID uint    `gorm:"index"`      // Foreign key to the receiving User
	Amount     float64 // Amount of the transfer, must be positive
	CreatedAt  int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}

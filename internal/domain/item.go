package domain

// Item Model
type Item struct {
	ID          uint    `gorm:"primaryKey"` // Primary key
	Name        string  `gorm:"not null"`   // Item name
	Description string  // Item description
	Price       float64 `gorm:"not null"` // Asking price, must be positive
	UserID      uint    `gorm:"index"`    // Foreign key to the owning User, fixed at creation
}

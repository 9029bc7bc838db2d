package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Username string `gorm:"unique;not null"` // Unique username
	Email    string `gorm:"unique;not null"` // Unique email, used for login
	Password string `gorm:"not null"`        // Hashed password
	IsAdmin  bool   `gorm:"default:false"`   // Admin flag, managed outside the API
}

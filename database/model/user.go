package model

// User is the single persisted entity: an account row in the users table.
// Role is free text with no enforced set; anything the client sends is stored.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         string `json:"role" gorm:"not null;default:user"`
}

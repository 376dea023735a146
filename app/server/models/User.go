package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// Basic info
	Name  string `gorm:"column:name"`              // display name
	Email string `gorm:"column:email;uniqueIndex"` // login identity, globally unique
	Role  string `gorm:"column:role;default:USER"` // ADMIN can mutate content, USER can only browse

	// Credentials
	Password string `gorm:"column:password"` // argon2id hash, never serialized on a read path
}
